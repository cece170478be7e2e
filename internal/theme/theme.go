package theme

import (
	"bytes"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/go-text/typesetting/font"

	"pwm/internal/config"
	apperrors "pwm/internal/errors"
)

// CustomTheme implements fyne.Theme with configurable font settings
type CustomTheme struct {
	config     *config.Config
	customFont fyne.Resource
}

// NewCustomTheme creates a new custom theme with the given configuration
func NewCustomTheme(config *config.Config) *CustomTheme {
	customTheme := &CustomTheme{config: config}

	if config.Theme.FontPath != "" {
		res, err := LoadFont(config.Theme.FontPath)
		if err != nil {
			slog.Warn("custom font ignored", "path", config.Theme.FontPath, "error", err)
		} else {
			customTheme.customFont = res
			slog.Debug("loaded custom font", "path", config.Theme.FontPath)
		}
	}

	return customTheme
}

// LoadFont reads a TrueType/OpenType font and checks that it parses before
// handing it to fyne, which would otherwise fail at render time.
func LoadFont(fontPath string) (fyne.Resource, error) {
	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, apperrors.NewThemeError("load_font", "cannot read font file "+fontPath, err)
	}

	if _, err := font.ParseTTF(bytes.NewReader(fontData)); err != nil {
		return nil, apperrors.NewThemeError("load_font", "not a usable font "+fontPath, err)
	}

	return fyne.NewStaticResource(filepath.Base(fontPath), fontData), nil
}

func (t *CustomTheme) base() fyne.Theme {
	if t.config.Theme.Dark {
		return theme.DarkTheme()
	}
	return theme.LightTheme()
}

// Color methods from default theme
func (t *CustomTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base().Color(name, variant)
}

// Icon methods from default theme
func (t *CustomTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base().Icon(name)
}

// Font method with custom font support
func (t *CustomTheme) Font(style fyne.TextStyle) fyne.Resource {
	// Monospace keeps the stock font so passwords stay unambiguous
	if t.customFont != nil && !style.Monospace {
		return t.customFont
	}
	return t.base().Font(style)
}

// Size method with custom font size support
func (t *CustomTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.config.Theme.FontSize > 0 {
		return float32(t.config.Theme.FontSize)
	}
	return t.base().Size(name)
}
