package report

import (
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/mozd/internal/jalali"
	"github.com/julianstephens/mozd/internal/ledger"
	"github.com/julianstephens/mozd/internal/logger"
	"github.com/julianstephens/mozd/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type htmlPage struct {
	Data
	FontFace template.CSS
}

// HTML writes data as a self-contained right-to-left document ready for the
// browser's print dialog.
func HTML(w io.Writer, data Data, opts Options) error {
	opts = opts.withDefaults()

	tmpl, err := template.New("report.html.tmpl").Funcs(funcMap(opts)).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	page := htmlPage{Data: data, FontFace: fontFace(opts.FontRegular, opts.FontBold)}
	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func funcMap(opts Options) template.FuncMap {
	nf := opts.Number
	return template.FuncMap{
		"currency": nf.Currency,
		"abs":      func(d decimal.Decimal) decimal.Decimal { return d.Abs() },
		"count":    nf.Int,
		"hours":    nf.Hours,
		"date": func(iso string) string {
			return jalali.Format(iso, opts.Calendar, nf.PersianDigits)
		},
		"month": func(key string) string {
			return jalali.MonthLabel(key, opts.Calendar, nf.PersianDigits)
		},
		"swatch": func(color string) template.CSS {
			if !colorPattern.MatchString(color) {
				color = "#999999"
			}
			return template.CSS("background-color: " + color)
		},
		"owed":   func(b ledger.Balance) bool { return b.Direction() == ledger.Owed },
		"method": func(p models.Payment) string { return p.MethodLabel() },
	}
}

// fontFace embeds the Vazirmatn faces found at the given paths as data URLs.
// Missing fonts are skipped and the stylesheet falls back to Tahoma.
func fontFace(regular, bold string) template.CSS {
	var b strings.Builder
	for _, face := range []struct {
		path   string
		weight int
	}{{regular, 400}, {bold, 700}} {
		if face.path == "" {
			continue
		}
		url, err := dataURL(face.path)
		if err != nil {
			logger.Warn("report font not embedded", "path", face.path, "error", err)
			continue
		}
		fmt.Fprintf(&b, "@font-face { font-family: 'Vazirmatn'; src: url('%s') format('%s'); font-weight: %d; }\n",
			url, fontFormat(face.path), face.weight)
	}
	return template.CSS(b.String())
}

func dataURL(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:" + fontMIME(path) + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func fontMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".woff":
		return "font/woff"
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	default:
		return "font/woff2"
	}
}

func fontFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".woff":
		return "woff"
	case ".ttf":
		return "truetype"
	case ".otf":
		return "opentype"
	default:
		return "woff2"
	}
}
