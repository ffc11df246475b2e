// Package report renders completed assessment results as PDF documents.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"mindwell-backend/internal/model"
	"mindwell-backend/internal/scoring"
)

type reportRecommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items"`
}

// ResultPDF renders an assessment result into a single-page PDF and returns
// the raw document bytes.
func ResultPDF(assessment *model.Assessment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Assessment Result", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Assessment Result")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 11)
	writeRow(pdf, "Assessment", assessment.AssessmentType.DisplayName)
	writeRow(pdf, "Completed", assessment.CompletedAt.Format("2 January 2006 15:04"))
	writeRow(pdf, "Total score", fmt.Sprintf("%d of %d", assessment.TotalScore, assessment.AssessmentType.MaxScore))
	writeRow(pdf, "Percentage", fmt.Sprintf("%.1f%%", scoring.Percentage(assessment.TotalScore, assessment.AssessmentType.MaxScore)))
	writeRow(pdf, "Risk level", formatRiskLevel(assessment.RiskLevel))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Interpretation")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, assessment.Interpretation, "", "L", false)
	pdf.Ln(4)

	var recommendations []reportRecommendation
	if len(assessment.Recommendations) > 0 {
		// Snapshot was written by the submission service; a decode failure
		// only drops the section.
		_ = json.Unmarshal(assessment.Recommendations, &recommendations)
	}
	if len(recommendations) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Recommendations")
		pdf.Ln(9)
		for _, rec := range recommendations {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, rec.Title, "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
			if rec.Description != "" {
				pdf.MultiCell(0, 6, rec.Description, "", "L", false)
			}
			for _, item := range rec.ActionItems {
				pdf.MultiCell(0, 6, "  - "+item, "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func formatRiskLevel(level model.RiskLevel) string {
	words := strings.Split(string(level), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
