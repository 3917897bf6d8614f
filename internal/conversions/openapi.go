package conversions

import "github.com/JaimeStill/doc-convert/pkg/openapi"

type spec struct {
	Convert *openapi.Operation
	Split   *openapi.Operation
	Merge   *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the conversion endpoints.
var Spec = spec{
	Convert: &openapi.Operation{
		Summary:     "Convert image to PDF",
		Description: "Renders a PNG, JPEG, GIF, BMP, TIFF, or WebP image as a single-page PDF. Transparency is flattened onto white.",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Schema{
			"file": openapi.BinarySchema("Image to convert"),
		}, "file"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Converted document", ContentTypePDF),
			400: openapi.ResponseText("Missing file or unsupported image format"),
			413: openapi.ResponseText("Upload exceeds the size limit"),
			500: openapi.ResponseText("Conversion failed"),
		},
	},
	Split: &openapi.Operation{
		Summary:     "Split PDF",
		Description: "Splits a PDF into one document per page or one document per page range and returns them as a zip archive.",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Schema{
			"file": openapi.BinarySchema("PDF to split"),
			"split_type": {
				Type:        "string",
				Description: "Split by every page or by the ranges in page_range",
				Enum:        []string{"all", "range"},
				Default:     "all",
			},
			"page_range": {
				Type:        "string",
				Description: "Comma separated inclusive 1-based ranges, e.g. 1-3,5-5. Required for range splits.",
			},
		}, "file"),
		Responses: map[int]*openapi.Response{
			200: splitResponse(),
			400: openapi.ResponseText("Missing file, invalid split type, or no valid page ranges"),
			413: openapi.ResponseText("Upload exceeds the size limit"),
			500: openapi.ResponseText("Document processing failed"),
		},
	},
	Merge: &openapi.Operation{
		Summary:     "Merge PDFs",
		Description: "Concatenates the uploaded PDFs in the order they were sent.",
		RequestBody: openapi.RequestBodyMultipart(map[string]*openapi.Schema{
			"files[]": {
				Type:        "array",
				Description: "PDFs to merge, in order",
				Items:       openapi.BinarySchema(""),
			},
		}, "files[]"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseBinary("Merged document", ContentTypePDF),
			400: openapi.ResponseText("No files uploaded"),
			413: openapi.ResponseText("Upload exceeds the size limit"),
			500: openapi.ResponseText("Merge failed"),
		},
	},
}

func splitResponse() *openapi.Response {
	resp := openapi.ResponseBinary("Zip archive of split documents", ContentTypeZip)
	resp.Headers[SkippedRangesHeader] = &openapi.Header{
		Description: "Comma separated page range tokens that were ignored",
		Schema:      &openapi.Schema{Type: "string"},
	}
	return resp
}
