// Package advisor produces the AI-generated surfaces: financial advice,
// budget plans, educational video links and news headlines. Every call is a
// single best-effort Gemini request; failures degrade to a fixed fallback
// string or an empty list, never an error the UI has to handle.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dvloznov/wealthmind/internal/budget"
	"github.com/dvloznov/wealthmind/internal/ledger"
	gocache "github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for all advisory calls.
const DefaultModelName = "gemini-2.5-flash"

// Fallback strings shown when the model call fails.
const (
	FallbackAdvice      = "AI service is currently unavailable. Please check your connection."
	FallbackEmptyAdvice = "Unable to generate advice at the moment."
	FallbackPlan        = "Could not generate a budget plan. Please try again."
)

// maxRecentTransactions bounds how much ledger history goes into the
// advice prompt.
const maxRecentTransactions = 20

// Resource is one educational or news link discovered via search grounding.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
}

// Advisor issues Gemini calls and caches the grounded results.
type Advisor struct {
	model string
	cache *gocache.Cache
}

// New creates an Advisor. Grounded education/news results are cached for
// cacheTTL so repeated page visits do not re-query the model.
func New(model string, cacheTTL time.Duration) *Advisor {
	if model == "" {
		model = DefaultModelName
	}
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Advisor{
		model: model,
		cache: gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// generate runs one Gemini text request.
func (a *Advisor) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("advisor: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("advisor: generate content: %w", err)
	}
	return resp, nil
}

// FinancialAdvice analyzes the ledger, monthly figures and goals and
// returns a few concise tips. On failure the fallback string is returned.
func (a *Advisor) FinancialAdvice(ctx context.Context, txs []ledger.Transaction, monthly budget.MonthlyData, goals []budget.Goal) string {
	recent := txs
	if len(recent) > maxRecentTransactions {
		recent = recent[:maxRecentTransactions]
	}
	recentJSON, _ := json.Marshal(recent)
	incomeJSON, _ := json.Marshal(map[string]float64{
		"salary":   monthly.Salary,
		"side":     monthly.SideIncome,
		"fixedInv": monthly.Investments,
	})
	goalsJSON, _ := json.Marshal(goals)

	prompt := fmt.Sprintf(
		"Analyze the following financial data and provide 3 concise, actionable tips to improve financial health.\n"+
			"Focus on spending habits, asset allocation, and goal progress.\n\n"+
			"Data:\n"+
			"- Recent Daily Transactions: %s\n"+
			"- Monthly Income/Fixed: %s\n"+
			"- Assets/Liabilities: Assets Total %.2f, Liabilities Total %.2f\n"+
			"- Goals: %s\n",
		recentJSON, incomeJSON, monthly.TotalAssets(), monthly.TotalLiabilities(), goalsJSON)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: "You are a savvy personal finance advisor. Be encouraging but direct. Keep advice under 150 words total."}},
		},
	}

	resp, err := a.generate(ctx, prompt, config)
	if err != nil {
		return FallbackAdvice
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return FallbackEmptyAdvice
}

// BudgetPlan asks the model for a personalized budgeting plan in markdown.
// On failure the fallback string is returned.
func (a *Advisor) BudgetPlan(ctx context.Context, name string, salary float64, currencyCode string) string {
	prompt := fmt.Sprintf(
		"Act as an expert Personal Finance Instructor. The user's name is %s. The user has a monthly income of %.2f %s.\n"+
			"Create a detailed, best-practice financial plan for them. Start by addressing them by name.\n\n"+
			"Structure your response with:\n"+
			"1. **The Split**: Recommend a budget split (e.g., 50/30/20 or similar) appropriate for this income, showing exact amounts for Needs, Wants, and Savings.\n"+
			"2. **Investment Strategy**: Suggest where to allocate the savings (e.g., Emergency Fund, Stocks/SIPs, Retirement). Be specific but add a disclaimer that this is educational.\n"+
			"3. **Smart Expense Management**: 3 specific tips to manage expenses for this income bracket.\n"+
			"4. **Growth**: One tip on how to potentially increase this income or wealth over time.\n\n"+
			"Format using clean Markdown (bolding, lists). Keep it professional, motivating, and easy to read.\n",
		name, salary, currencyCode)

	resp, err := a.generate(ctx, prompt, nil)
	if err != nil {
		return FallbackPlan
	}
	if text := resp.Text(); text != "" {
		return text
	}
	return FallbackPlan
}

// EducationResources finds video resources on the given topic using search
// grounding. Results are deduplicated by URL, capped at 6, cached, and an
// empty list is returned on any failure.
func (a *Advisor) EducationResources(ctx context.Context, topic string) []Resource {
	key := "education:" + topic
	if cached, ok := a.cache.Get(key); ok {
		return cached.([]Resource)
	}

	prompt := fmt.Sprintf("Find 3 highly-rated YouTube videos explaining %q. Focus on Personal Finance channels. Return the video title and specific YouTube watch URL.", topic)

	resp, err := a.generate(ctx, prompt, groundedConfig())
	if err != nil {
		return nil
	}

	resources := collectGroundedLinks(resp, func(title, uri string) Resource {
		if title == "" {
			title = "Learn Finance"
		}
		return Resource{
			Title:       title,
			Description: "Watch this video to learn more.",
			URL:         uri,
			Source:      "YouTube",
		}
	})

	a.cache.Set(key, resources, gocache.DefaultExpiration)
	return resources
}

// FinanceNews fetches today's top financial headlines using search
// grounding. Results are deduplicated by URL, capped at 6, cached, and an
// empty list is returned on any failure.
func (a *Advisor) FinanceNews(ctx context.Context) []Resource {
	const key = "news"
	if cached, ok := a.cache.Get(key); ok {
		return cached.([]Resource)
	}

	prompt := "What are the top 5 most important financial news headlines today? Return them as a list."

	resp, err := a.generate(ctx, prompt, groundedConfig())
	if err != nil {
		return nil
	}

	articles := collectGroundedLinks(resp, func(title, uri string) Resource {
		if title == "" {
			title = "Financial News"
		}
		return Resource{Title: title, URL: uri, Source: "Google Search"}
	})

	a.cache.Set(key, articles, gocache.DefaultExpiration)
	return articles
}

func groundedConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}
