package genai

import "github.com/dioarsa/football-oracle/internal/domain/prediction"

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// tool declares one model capability. The grounding capability is a precise
// typed variant rather than a free-form map so the request shape survives
// refactors intact.
type tool struct {
	GoogleSearch *googleSearchTool `json:"google_search,omitempty"`
}

// googleSearchTool enables web-search grounding; it is an empty object on
// the wire.
type googleSearchTool struct{}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
}

type groundingMetadata struct {
	GroundingChunks  []groundingChunk  `json:"groundingChunks"`
	SearchEntryPoint *searchEntryPoint `json:"searchEntryPoint"`
}

type groundingChunk struct {
	Web *webSource `json:"web"`
}

type webSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type searchEntryPoint struct {
	RenderedContent string `json:"renderedContent"`
}

type apiErrorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// predictionPayload is the JSON document the model is instructed to emit.
type predictionPayload struct {
	Winner            string                    `json:"winner"`
	Scoreline         string                    `json:"scoreline"`
	WinProbability    prediction.WinProbability `json:"winProbability"`
	TacticalBreakdown string                    `json:"tacticalBreakdown"`
}

func (r generateResponse) firstCandidateText() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

func (r generateResponse) grounding() *groundingMetadata {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].GroundingMetadata
}
