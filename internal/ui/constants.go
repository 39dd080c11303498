// Package ui provides shared UI constants and helpers.
package ui

const (
	// ScrollMargin is the number of rows kept visible above and below the cursor.
	ScrollMargin = 2

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// HeaderHeight is the title row plus its blank separator inside a panel.
	HeaderHeight = 2

	// PanelOverhead is the vertical overhead of a titled, bordered panel.
	PanelOverhead = BorderHeight + HeaderHeight

	// StatusHeight is the toast line plus the help line under the panel.
	StatusHeight = 2

	// MinPreviewWidth is the narrowest panel that still gets an image preview.
	MinPreviewWidth = 30
)
