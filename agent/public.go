package agent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/foliotrack/foliotrack"
	"github.com/foliotrack/foliotrack/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// PortfolioFile is the portfolio document the bookkeeper tools read.
// The CLI sets it from its -f flag before starting the agent.
var PortfolioFile = "portfolio.json"

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

			The user is here primarily to understand his portfolio: what he holds, how far each
			security is from its target share, and how to invest new cash to get closer to it.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request. The user will assume that you know his tickers, check the portfolio
			first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the market analyst expert, grounded in web search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert market analyst,
		very well aware of financial products and institutions,
		and of the latest news about funds and companies.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert market analyst. You can search and find about anything related to
			financial institutions, companies, markets and funds. You leverage Google Search to
			ground your assertions, and you know how to relate the latest news to the user's
			holdings.
				`}}},
		},
	}
}

// NewBookkeeper returns the expert in charge of the user's portfolio, with
// function tools over it.
func NewBookkeeper() *Expert {
	lib := []Function{Holdings, Equilibrium}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's portfolio.
		He can list the holdings with their actual and target shares, and compute how new cash
		should be allocated to bring the portfolio back to equilibrium.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's portfolio.
				You know how to use the Tools to extract relevant information about it.
				You are part of a team of experts, yours is everything about the user's portfolio.
				They might ask you questions about it, pardon their approximative language and
				figure out what they meant.

				Use the available tools to get:
				  - the holdings, with actual and target shares
				  - the equilibrium plan for a given amount of new cash
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
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

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// Holdings renders the portfolio snapshot as a markdown table.
var Holdings = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Holdings",
		Description: `Holdings lists all securities in the user's portfolio: ticker, name,
		latest price, volume held, value, and the actual vs target share of the portfolio value.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of the portfolio holdings.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		p, err := loadPortfolio()
		if err != nil {
			return failure(id, "Holdings", err)
		}
		info, err := p.Info(nil)
		if err != nil {
			return failure(id, "Holdings", err)
		}
		return success(id, "Holdings", renderer.InfoMarkdown(info))
	},
}

// Equilibrium computes the allocation of new cash that brings the
// portfolio closest to its target shares.
var Equilibrium = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Equilibrium",
		Description: `Equilibrium computes how a given amount of new cash should be split among
		the portfolio's securities to bring each holding as close as possible to its target share,
		without selling. It returns the planned amount, volume and projected share per security.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"amount": {
					Type:        genai.TypeNumber,
					Description: "The amount of new cash to invest, in the portfolio's currency.",
				},
			},
			Required: []string{"amount"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted purchase plan.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		amount, ok := args["amount"].(float64)
		if !ok {
			return failure(id, "Equilibrium", fmt.Errorf("argument 'amount' is not a number but %T", args["amount"]))
		}
		p, err := loadPortfolio()
		if err != nil {
			return failure(id, "Equilibrium", err)
		}
		plan, err := foliotrack.Solve(p, nil, foliotrack.SolveOptions{
			Amount: foliotrack.M(amount, p.Currency()),
		})
		if err != nil {
			return failure(id, "Equilibrium", err)
		}
		return success(id, "Equilibrium", renderer.PlanMarkdown(plan))
	},
}

// loadPortfolio reads the portfolio document the tools operate on.
// A missing file is an empty portfolio, not an error.
func loadPortfolio() (*foliotrack.Portfolio, error) {
	f, err := os.Open(PortfolioFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return foliotrack.NewPortfolio("EUR"), nil
		}
		return nil, fmt.Errorf("could not open portfolio file %q: %w", PortfolioFile, err)
	}
	defer f.Close()

	p, err := foliotrack.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode portfolio file %q: %w", PortfolioFile, err)
	}
	return p, nil
}
