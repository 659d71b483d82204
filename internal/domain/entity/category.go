package entity

// Category representa una categoría del bar (cervezas, licores, cocteles...).
// Stockable indica si los productos de la categoría llevan inventario.
type Category struct {
	ID        string
	Label     string
	Stockable bool
}
