package constant

// Prompt templates for the storefront assistant. Each template is filled with fmt.Sprintf;
// the verb order is documented next to the template.

const (
	// %s: user message
	IntentClassificationPrompt = `Classify the user's intent from this message: "%s"

Possible intents:
- PRODUCT_SEARCH: Looking for specific products
- PRODUCT_COMPARE: Wants to compare products
- CATEGORY_BROWSE: Wants to see categories or browse
- GENERAL_HELP: General questions about store, shipping, returns
- GREETING: Just saying hello

Respond with just the intent name (e.g., "PRODUCT_SEARCH").`

	// %s: user query
	KeywordExpansionPrompt = `A customer is searching for: "%s"

Generate smart search keywords that would help find relevant products in an e-commerce database.
Consider:
- Synonyms and related terms
- Product categories (electronics, clothing, home, sports, beauty, etc.)
- Brand names if mentioned
- Product features and specifications
- Different ways people might describe the same item

For example:
- "swim wear" -> "swimwear, swimsuit, bikini, swimming, beach, pool, bathing suit"
- "laptop" -> "laptop, computer, notebook, portable computer, macbook, pc"
- "phone" -> "phone, smartphone, mobile, cell phone, iphone, android"

Return ONLY a comma-separated list of keywords, no explanations.`

	// %s: user query, %s: JSON array of ranking candidates, %d: max ids
	ProductRankingPrompt = `Customer query: "%s"

Products found:
%s

Rank these products by relevance to the customer's query.

STRICT RANKING RULES:
1. EXACT or VERY CLOSE matches should be ranked FIRST
2. Products from the SAME CATEGORY as the query should be ranked higher
3. Products with SIMILAR PURPOSE/USE should be ranked higher
4. Products from COMPLETELY DIFFERENT categories should be ranked LAST

For example:
- If query is "swim wear" -> "SWIM SUIT" should rank #1, clothing items #2-3, electronics LAST
- If query is "laptop" -> "MacBook Air" should rank #1, other electronics #2-3, clothing LAST

Return ONLY the product IDs in order of relevance (most relevant first).
Format: id1,id2,id3,id4,id5
Return maximum %d product IDs (focus on most relevant).`

	// %s: user query, %s: one "name (category) - snippet..." line per product
	RelevanceFilterPrompt = `Customer query: "%s"

Top ranked products:
%s

Should I show ALL these products to the customer, or are some completely irrelevant?

Rules:
- If query is about clothing/fashion -> ONLY show clothing items
- If query is about electronics -> ONLY show electronics
- If query is about specific item -> ONLY show that category

Return "SHOW_ALL" if all products are relevant, or "FILTER" if some are irrelevant.`

	// %s: JSON array of products to compare
	ProductComparisonPrompt = `Compare these products in detail:
%s

Provide:
1. Overview of each product
2. Key differences
3. Price comparison
4. Pros and cons
5. Recommendations for different use cases

Make it helpful for a customer deciding what to buy.`

	// %s: user message, %s: one "name (category) - $price" line per product
	NoMatchSuggestionPrompt = `Customer searched for: "%s"

We couldn't find exact matches. Here are some products we have:
%s

Write a helpful response that:
1. Apologizes for not finding exact matches
2. Suggests similar or related products from our inventory
3. Encourages them to try different search terms
4. Stays positive and helpful

Be friendly like a helpful store assistant.`

	// %s: user message, %s: JSON array of products
	ProductAnswerPrompt = `A customer asked: "%s"

Here are the relevant products I found using AI search:
%s

Write a helpful and engaging response that:
1. Acknowledges their request enthusiastically
2. Highlights the best matching products (mention specific names)
3. Mentions key features, categories, and prices
4. Explains why these products are good matches
5. Asks if they need more specific help or want to compare products

Be friendly, knowledgeable, and helpful like an expert sales assistant.
Use emojis occasionally to make it more engaging.`

	// %s: user message
	GeneralHelpPrompt = `A customer said: "%s"

This is a general query for an e-commerce store. Provide a helpful response about:
- Store policies (shipping, returns, etc.)
- Account help
- General shopping assistance
- Friendly greeting responses

Keep it concise and helpful.`
)

// Fixed replies used when a stage cannot, or need not, ask the model.
const (
	InsufficientProductsMessage  = "I need at least 2 products to compare. Let me search for more options."
	ComparisonFailedMessage      = "Sorry, I couldn't generate a comparison right now."
	ProductResponseFailedMessage = "Sorry, I encountered an error while finding products for you. Please try again!"
	NoCategoriesMessage          = "We don't have any categories set up yet. Please check back later!"
	GeneralFallbackMessage       = "Hello! I'm here to help you find products and answer questions about our store. What can I help you with today?"
	ProcessingFailedMessage      = "Sorry, I encountered an error while processing your request. Please try again."
	UncategorizedLabel           = "Uncategorized"

	// %s: user message
	EmptyCatalogMessage = `I couldn't find products matching "%s". Our inventory is currently being updated. Please try again later!`
	// %s: "Name (N products), ..." list
	CategorySummaryMessage = `Here are our categories: %s. You can ask me about products in any of these categories, or say something like "show me electronics" to see specific products!`
)
