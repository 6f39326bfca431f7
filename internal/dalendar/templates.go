package dalendar

import (
	"html/template"
	"image/color"

	"github.com/dalendar/dalendar/internal/wheel"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var intl = message.NewPrinter(language.English)

var globalTemplateFunctions = template.FuncMap{
	"formatNumber": intl.Sprint,
	"formatPercent": func(part, total int) string {
		if total == 0 {
			return "0%"
		}
		return intl.Sprintf("%.1f%%", float64(part)/float64(total)*100)
	},
	"formatDate": func(t interface{ Format(string) string }) string {
		return t.Format("Monday, January 2, 2006")
	},
	"cssColor": func(c color.NRGBA) template.CSS {
		return template.CSS(wheel.Hex(c))
	},
}

func mustParseTemplate(primary string, dependencies ...string) *template.Template {
	t, err := template.New(primary).
		Funcs(globalTemplateFunctions).
		ParseFS(templateFS, append([]string{primary}, dependencies...)...)

	if err != nil {
		panic(err)
	}

	return t
}
