package ui

// ColorPrimary returns the escape code for highlighted values.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorSecondary returns the escape code for secondary details.
func ColorSecondary() string { return GetCurrentTheme().Secondary }

// ColorSuccess returns the escape code for successful conversions.
func ColorSuccess() string { return GetCurrentTheme().Success }

// ColorWarning returns the escape code for warnings.
func ColorWarning() string { return GetCurrentTheme().Warning }

// ColorError returns the escape code for failures.
func ColorError() string { return GetCurrentTheme().Error }

// ColorInfo returns the escape code for headings.
func ColorInfo() string { return GetCurrentTheme().Info }

// ColorBold returns the escape code for bold text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the escape code for underlined text.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the escape code that clears formatting.
func ColorReset() string { return GetCurrentTheme().Reset }
