// Package socratic provides a conversational research assistant that
// interleaves clarifying questions with web-search planning.
//
// A Manager drives a fixed-length dialogue: it asks an initial question
// about the user's query, asks a bounded number of follow-up questions that
// refine context, then hands the accumulated context to a planner that
// proposes web search terms. With a search provider configured, the plan is
// executed concurrently and each term is summarized.
//
// # Architecture
//
// The session protocol is a small state machine:
//
//	AwaitingQuery → AwaitingAnswer(k) → Planning → (Executing) → Done
//
//  1. Start asks the first clarifying question from the initial query.
//  2. Each Submit records an answer and either asks the next question or,
//     once the question budget is met, produces the search plan.
//  3. With a SearchProvider configured, all plan terms are searched and
//     summarized in parallel before the session completes.
//
// Every generation call receives the session's canonical serialized form in
// full — the models are stateless collaborators with no memory between
// calls.
//
// # Basic Usage
//
//	mgr := socratic.New(
//	    socratic.WithModel(llm.NewOpenAI(apiKey, "gpt-4o-mini")),
//	    socratic.WithSearchProvider(search.NewDuckDuckGo()),
//	    socratic.WithQuestionBudget(3),
//	    socratic.WithSearchCount(3),
//	)
//
//	out, err := mgr.Start(ctx, "I want to learn about machine learning")
//	for out.Kind == socratic.OutputQuestion {
//	    fmt.Println(out.Question.Question)
//	    out, err = mgr.Submit(ctx, readAnswer())
//	}
//
// # Interfaces
//
// Implement LLMProvider to connect any language model:
//
//	type LLMProvider interface {
//	    Generate(ctx context.Context, systemPrompt, userPrompt string) (LLMResponse, error)
//	}
//
// Implement SearchProvider to use any search backend:
//
//	type SearchProvider interface {
//	    Search(ctx context.Context, query string) ([]SearchResult, error)
//	}
//
// # Cost Tracking
//
// Every LLM call and search call can report a cost. Output.Cost carries the
// session's accumulated total; search costs are configured via
// WithSearchCost.
//
// See the examples/basic directory for a complete example and cmd/socratic
// for an interactive console front end.
package socratic
