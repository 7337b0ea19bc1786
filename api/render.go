package api

import (
	"bytes"
	"embed"
	"html/template"

	"favorite-app-service/data"
	"favorite-app-service/service"
)

//go:embed templates/form.html
var templates embed.FS

// Page renders the form, optionally with a prediction result.
type Page struct {
	tmpl    *template.Template
	choices *data.Choices
}

type pageData struct {
	Choices *data.Choices
	Result  *service.PredictionResult
	Error   string
}

func NewPage(choices *data.Choices) (*Page, error) {
	tmpl, err := template.ParseFS(templates, "templates/form.html")
	if err != nil {
		return nil, err
	}
	return &Page{tmpl: tmpl, choices: choices}, nil
}

func (p *Page) Render(result *service.PredictionResult, errMsg string) ([]byte, error) {
	var buf bytes.Buffer
	err := p.tmpl.Execute(&buf, pageData{
		Choices: p.choices,
		Result:  result,
		Error:   errMsg,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
