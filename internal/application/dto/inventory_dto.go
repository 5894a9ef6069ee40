package dto

import "time"

// MovementEntryRequest una entrada de un lote de movimientos.
type MovementEntryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=Entrada Salida Ajuste"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
	Location  string `json:"location,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
// El formulario manual envía un lote de tamaño 1; compras y ventas arman lotes
// de varias entradas que se aplican en orden.
type RegisterMovementRequest struct {
	Entries []MovementEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

// EntryResultResponse resultado explícito por entrada del lote
// (reemplaza el skip silencioso del sistema original).
type EntryResultResponse struct {
	ProductID string `json:"product_id"`
	Status    string `json:"status"` // applied, not_found, invalid
}

// RegisterMovementResponse respuesta de la aplicación de un lote.
type RegisterMovementResponse struct {
	Entries   []EntryResultResponse `json:"entries"`
	Movements []MovementResponse    `json:"movements"`
}

// MovementResponse un movimiento registrado.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	SKU              string    `json:"sku"`
	Type             string    `json:"type"`
	Quantity         int64     `json:"quantity"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	Date             time.Time `json:"date"`
	Location         string    `json:"location"`
	Reason           string    `json:"reason"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
