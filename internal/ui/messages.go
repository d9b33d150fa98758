package ui

import (
	"scandash/internal/artifact"
)

// Messages.

type summaryLoadedMsg struct {
	summary *artifact.Summary
	err     error
}

// detailLoadedMsg carries one detail fetch result. gen identifies the
// selection the fetch was issued for; results from superseded selections are
// dropped on arrival.
type detailLoadedMsg struct {
	gen    int
	ticker string
	detail *artifact.Detail
	err    error
}

// tickerSelectedMsg is emitted by the table when a row is chosen.
type tickerSelectedMsg struct {
	ticker string
}
