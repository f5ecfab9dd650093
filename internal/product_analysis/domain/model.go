package domain

import (
	"encoding/json"
	"time"
)

// ProductContext identifies the product being analysed. Built per request, never stored.
type ProductContext struct {
	ProductName string   `json:"productName" binding:"required"`
	Brand       string   `json:"brand"`
	Category    string   `json:"category"`
	Concerns    []string `json:"concerns,omitempty"`
}

// Answer is one caller supplied question/answer pair
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProductData is the analyze-product payload: the context plus optional answers
type ProductData struct {
	ProductContext
	Answers []Answer `json:"answers,omitempty"`
}

type AnalyzeRequest struct {
	ProductData *ProductData `json:"productData" binding:"required"`
}

// QuestionRequest is the body sent to the AI service /generate-questions endpoint
type QuestionRequest struct {
	ProductName  string   `json:"product_name"`
	Brand        string   `json:"brand"`
	Category     string   `json:"category"`
	UserConcerns []string `json:"user_concerns"`
}

// ScoreRequest is the body sent to the AI service /transparency-score endpoint
type ScoreRequest struct {
	ProductName string   `json:"product_name"`
	Answers     []Answer `json:"answers"`
}

type ProductInfo struct {
	Name       string    `json:"name"`
	Brand      string    `json:"brand"`
	Category   string    `json:"category"`
	AnalyzedAt time.Time `json:"analyzedAt"`
}

// AnalysisResponse is the merged result of the two analysis phases.
// Questions and Score are upstream JSON passed through untouched; nil encodes as null.
type AnalysisResponse struct {
	Success     bool            `json:"success"`
	Questions   json.RawMessage `json:"questions"`
	Score       Payload         `json:"score"`
	ProductInfo ProductInfo     `json:"productInfo"`
}

// ReportRequest is the PDF renderer input. Both parts are loosely typed.
type ReportRequest struct {
	ProductData  Payload `json:"productData"`
	AnalysisData Payload `json:"analysisData"`
}

// ReportRecord is one entry of the analysis history served by /api/reports
type ReportRecord struct {
	ID           string    `json:"id"`
	ProductName  string    `json:"productName"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	OverallScore *float64  `json:"overallScore"`
	Scored       bool      `json:"scored"`
	AnalyzedAt   time.Time `json:"analyzedAt"`
}
