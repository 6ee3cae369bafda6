package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/bankfeed"
	"github.com/etnz/bankfeed/date"
	"github.com/etnz/bankfeed/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Fetcher retrieves all transactions of the last days from the configured
// bank sources. It is supplied by the caller so that the agent package does
// not know about tokens or source wiring.
type Fetcher func(ctx context.Context, days int) ([]bankfeed.Transaction, date.Range, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his spending: where the money went,
			which categories grew, which subscriptions keep charging him.

			Devise a plan of questions to ask to each expert and come up with the best response
			to the user's request. The user will assume you already looked at his recent
			spending report before answering.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns an expert grounded with Google Search, for looking
// up unfamiliar merchants, MCC codes or subscription services.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is a researcher with access to Google Search.
		Ask the Researcher whenever you need to identify an unfamiliar merchant name,
		a card statement descriptor, or the typical price of a subscription service.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a researcher. You can search and find out about anything related to
			merchants, banks, card schemes and subscription services. You leverage Google
			Search to ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewAnalyst returns the expert in charge of the user's transactions.
func NewAnalyst(fetch Fetcher) *Expert {
	lib := []Function{newSpendingReport(fetch), newRecurringPayments(fetch)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. He is in charge of reading the user's bank
		transactions. He can fetch the recent transactions from all connected banks,
		compute spending reports and detect recurring payments.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's bank transactions.
				You know how to use the Tools to extract relevant information about
				the user's recent spending. You are part of a team of experts, yours is
				everything about the user's transactions. They might ask you questions
				in approximative language, figure out what they meant.

				Use the available tools to get information about the user's spending
				  - full spending report over a window of days
				  - recurring payments such as subscriptions
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func daysDecl(description string) *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"days": {
				Type:        genai.TypeInteger,
				Description: description,
			},
		},
	}
}

func parseDays(args map[string]any, fallback int) (int, error) {
	idays, hasDays := args["days"]
	if !hasDays {
		return fallback, nil
	}
	switch v := idays.(type) {
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return fallback, fmt.Errorf("argument 'days' is not a number as expected but %T", idays)
	}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func newSpendingReport(fetch Fetcher) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SpendingReport",
			Description: `SpendingReport fetches all transactions of the last days from the
			connected banks and renders the full spending report: transactions, totals per
			currency, category breakdowns, top expenses and a daily grid.`,
			Parameters: daysDecl("Number of past days to cover. 14 is the default."),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted spending report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			days, err := parseDays(args, 14)
			if err != nil {
				return failure(id, "SpendingReport", err)
			}
			txs, w, err := fetch(ctx, days)
			if err != nil {
				return failure(id, "SpendingReport", err)
			}
			report := bankfeed.NewReport(txs, w, time.Now())
			return &genai.FunctionResponse{
				ID:   id,
				Name: "SpendingReport",
				Response: map[string]any{
					"output": renderer.ReportMarkdown(report),
				},
			}
		},
	}
}

func newRecurringPayments(fetch Fetcher) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RecurringPayments",
			Description: `RecurringPayments fetches the transactions of the last days and
			lists the groups of payments that repeat with the same description and amount,
			such as monthly subscriptions.`,
			Parameters: daysDecl("Number of past days to scan. 90 is the default."),
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted list of recurring payment groups.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			days, err := parseDays(args, 90)
			if err != nil {
				return failure(id, "RecurringPayments", err)
			}
			txs, _, err := fetch(ctx, days)
			if err != nil {
				return failure(id, "RecurringPayments", err)
			}
			groups := bankfeed.DetectRecurring(txs)
			var b strings.Builder
			if len(groups) == 0 {
				b.WriteString("No recurring payments detected.\n")
			}
			for _, g := range groups {
				fmt.Fprintf(&b, "- %s: %s, %d occurrences, every %.1f days, last on %s\n",
					g.Description, g.Amount, g.Occurrences, g.AvgIntervalDays,
					g.LastSeen.Format("2006-01-02"))
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "RecurringPayments",
				Response: map[string]any{
					"output": b.String(),
				},
			}
		},
	}
}
