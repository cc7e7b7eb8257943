// Package printout renders recipes as printable PDF cards with a QR code
// linking back to the recipe page.
package printout

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"saborify/models"
)

type Printer struct {
	publicURL string
}

func New(publicURL string) *Printer {
	return &Printer{publicURL: strings.TrimRight(publicURL, "/")}
}

// RecipeLink is the page a printed card points to. AI recipes were never
// stored and have no page.
func (p *Printer) RecipeLink(r models.Recipe) string {
	if r.IsAIGenerated() || r.ID.IsZero() || p.publicURL == "" {
		return ""
	}
	return p.publicURL + "/recipe-detail?id=" + url.QueryEscape(r.ID.String())
}

// Recipe writes a single recipe card.
func (p *Printer) Recipe(w io.Writer, r models.Recipe) error {
	pdf := newDocument()
	if err := p.card(pdf, r); err != nil {
		return err
	}
	return pdf.Output(w)
}

// Recipes writes one card per page. An empty list still yields a page
// saying so.
func (p *Printer) Recipes(w io.Writer, title string, list []models.Recipe) error {
	pdf := newDocument()
	if len(list) == 0 {
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, tr(title))
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 10, "No recipes yet.")
		return pdf.Output(w)
	}
	for _, r := range list {
		if err := p.card(pdf, r); err != nil {
			return err
		}
	}
	return pdf.Output(w)
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	return pdf
}

func (p *Printer) card(pdf *gofpdf.Fpdf, r models.Recipe) error {
	// core fonts are cp1252; recipe text is Spanish
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(130, 9, tr(r.Name), "", "L", false)
	pdf.Ln(2)

	if link := p.RecipeLink(r); link != "" {
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("printout: qr: %w", err)
		}
		name := "qr-" + r.ID.String()
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, 160, 12, 35, 35, false, opts, 0, link)
	}

	pdf.SetFont("Arial", "", 11)
	for _, line := range facts(r) {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	if r.Description != "" {
		pdf.Ln(2)
		pdf.SetFont("Arial", "I", 11)
		pdf.MultiCell(0, 6, tr(r.Description), "", "L", false)
	}

	if len(r.Ingredients) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Ingredientes")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, ing := range r.Ingredients {
			pdf.Cell(0, 6, tr("- "+ing.Name))
			pdf.Ln(6)
		}
	}

	if len(r.Steps) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Pasos")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for i, step := range r.Steps {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, step.Text)), "", "L", false)
		}
	}

	return pdf.Error()
}

func facts(r models.Recipe) []string {
	var out []string
	if r.Cuisine != "" {
		out = append(out, "Cocina: "+r.Cuisine)
	}
	if len(r.MealTypes) > 0 {
		out = append(out, "Tipo: "+strings.Join(r.MealTypes, ", "))
	}
	if r.Difficulty != "" {
		out = append(out, "Dificultad: "+r.Difficulty)
	}
	if r.CookingTime != nil {
		out = append(out, fmt.Sprintf("Tiempo: %d min", *r.CookingTime))
	}
	if r.Servings != nil {
		out = append(out, fmt.Sprintf("Comensales: %d", *r.Servings))
	}
	if r.CaloriesPerServ != nil {
		out = append(out, fmt.Sprintf("Calorías por ración: %d", *r.CaloriesPerServ))
	}
	if r.Rating != nil {
		out = append(out, fmt.Sprintf("Valoración: %.1f", *r.Rating))
	}
	return out
}
