package domain

import "github.com/google/uuid"

// ValidID indica si id es un UUID bien formado. Todas las claves del almacén son UUID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// ValidOptionalID acepta el vacío (filtro no aplicado) o un UUID bien formado.
func ValidOptionalID(id string) bool {
	return id == "" || ValidID(id)
}
