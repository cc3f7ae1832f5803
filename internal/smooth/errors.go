package smooth

import "fmt"

// InvalidParameterError reports a smoothing parameter outside its domain.
type InvalidParameterError struct {
	Name  string
	Value float64
	Want  string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("smooth: %s must be %s, got %g", e.Name, e.Want, e.Value)
}
