package interfaces

import "time"

//go:generate mockgen -source=clock_interface.go -destination=mocks/mock_clock.go -package=mock_interfaces

// IClock supplies the current civil date, as midnight UTC.
type IClock interface {
	Today() time.Time
}
