package sales_test

import "github.com/jhoicas/barstock-api/internal/domain/repository"

func repositoryFilterByReceipt(id string) repository.SaleFilter {
	return repository.SaleFilter{ReceiptID: id}
}
