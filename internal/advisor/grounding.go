package advisor

import "google.golang.org/genai"

// maxGroundedLinks caps how many grounded links are surfaced per call.
const maxGroundedLinks = 6

// collectGroundedLinks walks the grounding chunks of a response and builds
// resources from the web references, deduplicating by URL and preserving
// first-seen order.
func collectGroundedLinks(resp *genai.GenerateContentResponse, build func(title, uri string) Resource) []Resource {
	var out []Resource
	seen := make(map[string]bool)

	for _, cand := range resp.Candidates {
		if cand == nil || cand.GroundingMetadata == nil {
			continue
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk == nil || chunk.Web == nil {
				continue
			}
			uri := chunk.Web.URI
			if uri == "" || seen[uri] {
				continue
			}
			seen[uri] = true
			out = append(out, build(chunk.Web.Title, uri))
			if len(out) >= maxGroundedLinks {
				return out
			}
		}
	}
	return out
}
