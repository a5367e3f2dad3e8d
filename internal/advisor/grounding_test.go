package advisor

import (
	"testing"

	"google.golang.org/genai"
)

func groundedResponse(refs ...[2]string) *genai.GenerateContentResponse {
	chunks := make([]*genai.GroundingChunk, 0, len(refs))
	for _, r := range refs {
		chunks = append(chunks, &genai.GroundingChunk{
			Web: &genai.GroundingChunkWeb{Title: r[0], URI: r[1]},
		})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: chunks}},
		},
	}
}

func TestCollectGroundedLinks(t *testing.T) {
	resp := groundedResponse(
		[2]string{"First", "https://a.example"},
		[2]string{"Duplicate", "https://a.example"},
		[2]string{"Second", "https://b.example"},
		[2]string{"Empty URI", ""},
	)

	got := collectGroundedLinks(resp, func(title, uri string) Resource {
		return Resource{Title: title, URL: uri}
	})

	if len(got) != 2 {
		t.Fatalf("collectGroundedLinks returned %d resources, want 2", len(got))
	}
	if got[0].URL != "https://a.example" || got[1].URL != "https://b.example" {
		t.Errorf("Order or dedup wrong: %+v", got)
	}
	if got[0].Title != "First" {
		t.Errorf("Duplicate URL overwrote first title: %q", got[0].Title)
	}
}

func TestCollectGroundedLinksCap(t *testing.T) {
	refs := make([][2]string, 0, maxGroundedLinks+3)
	for i := 0; i < maxGroundedLinks+3; i++ {
		refs = append(refs, [2]string{"t", "https://example.com/" + string(rune('a'+i))})
	}

	got := collectGroundedLinks(groundedResponse(refs...), func(title, uri string) Resource {
		return Resource{Title: title, URL: uri}
	})
	if len(got) != maxGroundedLinks {
		t.Errorf("collectGroundedLinks returned %d resources, want cap %d", len(got), maxGroundedLinks)
	}
}

func TestCollectGroundedLinksNilSafety(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			nil,
			{},
			{GroundingMetadata: &genai.GroundingMetadata{GroundingChunks: []*genai.GroundingChunk{nil, {}}}},
		},
	}

	got := collectGroundedLinks(resp, func(title, uri string) Resource {
		return Resource{Title: title, URL: uri}
	})
	if len(got) != 0 {
		t.Errorf("collectGroundedLinks on empty metadata = %+v, want none", got)
	}
}

func TestNewDefaults(t *testing.T) {
	a := New("", 0)
	if a.model != DefaultModelName {
		t.Errorf("model = %q, want %q", a.model, DefaultModelName)
	}
	if a.cache == nil {
		t.Error("cache not initialized")
	}
}
