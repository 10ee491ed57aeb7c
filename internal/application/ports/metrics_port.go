package ports

// Metrics contadores de negocio que exponen los casos de uso.
type Metrics interface {
	StockMutation(resource, operation string)
	StockRejection(resource, operation string)
	FCRComputed(performance string)
}

// NopMetrics descarta todo (tests y herramientas de línea de comandos).
type NopMetrics struct{}

func (NopMetrics) StockMutation(string, string)  {}
func (NopMetrics) StockRejection(string, string) {}
func (NopMetrics) FCRComputed(string)            {}
