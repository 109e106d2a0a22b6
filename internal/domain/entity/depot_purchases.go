package entity

// DepotPurchases agrupa las compras de un acopio para la vista de admin
// "todas las compras por acopio". Solo lectura.
type DepotPurchases struct {
	DepotID   string
	DepotName string
	Purchases []*Purchase
}
