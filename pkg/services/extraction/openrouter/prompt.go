package openrouter

const basePrompt = `You convert insurance restoration claim documents into structured JSON.

Read the claim document provided by the user and return ONE JSON object with exactly this shape:

{
  "deductible": number,
  "claimNumber": "string",
  "claimAdjuster": {"name": "string", "email": "string"},
  "trades": [
    {
      "id": "string",
      "name": "string",
      "checked": false,
      "supplements": [],
      "lineItems": [
        {
          "id": "string",
          "documentLineNumber": "string",
          "quantity": "string",
          "description": "string",
          "rcv": number,
          "acv": number,
          "checked": true,
          "notes": ""
        }
      ]
    }
  ]
}

Rules:
- Group line items under the trade they belong to (Roofing, Siding, Drywall, Painting, etc.), preserving document order.
- "rcv" (replacement cost value) is required per line item. Include "acv" (actual cash value) only when the document states it; never copy rcv into acv.
- "quantity" keeps the document's magnitude and unit as text, e.g. "24.5 SQ".
- "documentLineNumber" is the document's own line reference when present.
- All currency amounts are plain non-negative numbers without symbols or separators.
- Set "checked": true on every extracted line item and leave "supplements" empty.
- Return ONLY the JSON object.`

const strictSuffix = `

STRICT MODE: your previous answer was not parseable. Return raw JSON only: no markdown fences, no prose before or after the object, no trailing commas, and escape every double quote inside string values as \".`

func systemPrompt(strict bool) string {
	if strict {
		return basePrompt + strictSuffix
	}
	return basePrompt
}
