package hscode

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/llm/llmtest"
)

func TestClassify_ExtractsEmbeddedObject(t *testing.T) {
	gen := &llmtest.Generator{Text: `Explanation text {"hs_code":"123456","reason":"r","confidence":"80"} trailing text`}
	svc := NewService(gen, nil)

	out, err := svc.Classify(context.Background(), "Laptop", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"hs_code": "123456", "reason": "r", "confidence": "80"}, out)

	reqs := gen.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Parts, 1)
	assert.False(t, reqs[0].Parts[0].IsBlob())
	assert.Contains(t, reqs[0].Parts[0].Text, "Laptop")
}

func TestClassify_FencedResponse(t *testing.T) {
	gen := &llmtest.Generator{Text: "```json\n{\"hs_code\":\"847130\",\"reason\":\"portable computer\",\"confidence\":\"92\"}\n```"}

	out, err := NewService(gen, nil).Classify(context.Background(), "", "portable notebook computer")
	require.NoError(t, err)
	assert.Equal(t, "847130", out["hs_code"])
}

func TestClassify_EmptyInputDoesNotCallModel(t *testing.T) {
	gen := &llmtest.Generator{Text: `{"hs_code":"000000"}`}

	_, err := NewService(gen, nil).Classify(context.Background(), "", "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, MissingProductMessage, common.PublicMessage(err))
	assert.Empty(t, gen.Requests())
}

func TestClassify_Failures(t *testing.T) {
	_, err := NewService(&llmtest.Generator{Text: "no idea"}, nil).Classify(context.Background(), "x", "")
	assert.ErrorIs(t, err, common.ErrParse)

	_, err = NewService(&llmtest.Generator{Text: `["847130"]`}, nil).Classify(context.Background(), "x", "")
	assert.ErrorIs(t, err, common.ErrParse)

	_, err = NewService(&llmtest.Generator{Err: errors.New("timeout")}, nil).Classify(context.Background(), "x", "")
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Equal(t, "generate content: timeout", common.PublicMessage(err))
}

func TestClassify_ReturnsObjectAsParsed(t *testing.T) {
	gen := &llmtest.Generator{Text: `{"reason":"forgot the code","confidence":"low"}`}
	out, err := NewService(gen, nil).Classify(context.Background(), "x", "")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"reason": "forgot the code", "confidence": "low"}, out)
}
