package respond

import "github.com/danielgtaylor/huma/v2"

// MetadataFixedContent marks operations whose handler writes a fixed media type
// instead of going through content negotiation.
const MetadataFixedContent = "fixedContent"

// DocumentCBOR is an OpenAPI OnAddOperation hook that lists application/cbor next
// to every application/json response body of a negotiated operation.
func DocumentCBOR(_ *huma.OpenAPI, op *huma.Operation) {
	if fixed, _ := op.Metadata[MetadataFixedContent].(bool); fixed {
		return
	}
	for _, resp := range op.Responses {
		if resp == nil || resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// DocumentBadRequest is an OpenAPI OnAddOperation hook that documents validation
// failures under 400, matching the status Install makes huma send.
func DocumentBadRequest(_ *huma.OpenAPI, op *huma.Operation) {
	resp, ok := op.Responses["422"]
	if !ok {
		return
	}
	delete(op.Responses, "422")
	if _, exists := op.Responses["400"]; !exists {
		resp.Description = "Bad Request"
		op.Responses["400"] = resp
	}
}
