package planner

// Log prefixes
const (
	LogPrefixPlan = "internal.planner.Plan"
)

// Generation parameters
const (
	DefaultTemperature = 0.0
	DefaultMaxTokens   = 50
)

// PromptPlanner is the few-shot instruction. The query is appended after the final "User query:".
const PromptPlanner = `I will give you a user query. Decide whether answering it needs internet access and, if so, which search terms to use.
Reply with a single JSON object and nothing else:
- {"search": "<terms>"} when the answer depends on current events, live data, or facts worth checking on the web.
- {"text": "<the query, unchanged>"} when it can be answered from the conversation or general knowledge.

User query: What is in the news today?
{"search": "news today"}

User query: What is the weather like in New York?
{"search": "weather New York"}

User query: Explain physics to me in simple terms.
{"text": "Explain physics to me in simple terms."}

User query: What are the Coldplay tour dates?
{"search": "Coldplay tour dates"}

User query: How do I replace my alternator? Explain in simple terms.
{"search": "How do I replace my alternator?"}

User query: Can you explain further?
{"text": "Can you explain further?"}

User query: I am a programmer and I need to know the best method for SSO.
{"search": "best method for SSO"}

User query: Write a poem about the ocean.
{"text": "Write a poem about the ocean."}

User query: What won the Oscar for best picture in 2020?
{"search": "What won the Oscar for best picture in 2020?"}

User query: Can you help me with this math problem: 100 * 82726
{"text": "Can you help me with this math problem: 100 * 82726"}

User query: I missed that, can you repeat it?
{"text": "I missed that, can you repeat it?"}

User query: %s
`

// Fallback reasons
const (
	ReasonBlankQuery    = "blank query"
	ReasonLLMCallFailed = "LLM call failed"
	ReasonEmptyResponse = "empty LLM response"
	ReasonNoJSONObject  = "no JSON object in response"
	ReasonJSONParse     = "failed to parse JSON"
	ReasonAmbiguousPlan = "response sets both or neither of text and search"
	ReasonEmptySearch   = "empty search phrase"
)
