package entity

import "time"

// Tipos de movimiento de stock. Los valores en español se conservan tal cual
// por compatibilidad con los registros ya almacenados.
const (
	MovementTypeEntrada = "Entrada" // entrada de mercancía (suma)
	MovementTypeSalida  = "Salida"  // salida de mercancía (resta, puede quedar negativo)
	MovementTypeAjuste  = "Ajuste"  // ajuste absoluto (fija la cantidad)
)

// Movement es el registro inmutable de un cambio de cantidad.
// Se crea exactamente una vez por operación que cambia stock y nunca se edita:
// una reversa siempre inserta un movimiento compensatorio nuevo.
type Movement struct {
	ID               string
	CompanyID        string
	ProductID        string
	ProductName      string
	SKU              string
	Type             string // Entrada, Salida, Ajuste
	Quantity         int64  // delta solicitado (valor absoluto para Ajuste)
	PreviousQuantity int64  // cantidad inmediatamente antes de aplicar esta entrada
	NewQuantity      int64  // cantidad resultante
	Date             time.Time
	Location         string
	Reason           string
	CreatedBy        string // UserID
}
