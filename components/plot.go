// Package components defines the ECS components for the field simulation.
package components

// Plot identifies one field plot in the simulation world.
type Plot struct {
	Index   int
	Name    string
	Area    float64 // m2
	SownDay int     // weather-file day index the plot was sown on
}
