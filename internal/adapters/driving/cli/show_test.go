package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/equipcheck/internal/core/domain"
)

func TestShowCmd_Text(t *testing.T) {
	ts := setupTestServices(t)
	in := seedInspection(t, ts, "CAEX 301", time.Now())

	out, err := executeCommand(t, "show", in.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "CAEX 301")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "1. Motor")
	assert.Contains(t, out, "[ok] Nivel de aceite")
	assert.Contains(t, out, "[NC] Fugas")
	assert.Contains(t, out, "comment: fuga en el carter")
	assert.Contains(t, out, "photo: file:///tmp/fuga.jpg")
}

func TestShowCmd_JSON(t *testing.T) {
	ts := setupTestServices(t)
	in := seedInspection(t, ts, "CAEX 301", time.Now())

	out, err := executeCommand(t, "show", in.ID, "--json")

	require.NoError(t, err)
	var doc struct {
		ID                   string  `json:"id"`
		ConformityPercentage float64 `json:"conformity_percentage"`
		Items                []struct {
			Questions []struct {
				Answer struct {
					Conformity string `json:"conformity"`
				} `json:"answer"`
			} `json:"questions"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, in.ID, doc.ID)
	assert.Equal(t, 50.0, doc.ConformityPercentage)
	require.Len(t, doc.Items, 1)
	require.Len(t, doc.Items[0].Questions, 2)
	assert.Equal(t, "non_conforming", doc.Items[0].Questions[1].Answer.Conformity)
}

func TestShowCmd_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowCmd_RequiresID(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "show")

	assert.Error(t, err)
}

func TestAnswerMark(t *testing.T) {
	assert.Equal(t, "[ok]", answerMark(domain.NewConformingAnswer("", nil)))
	assert.Equal(t, "[NC]", answerMark(domain.NewNonConformingAnswer("x", nil)))
	assert.Equal(t, "[  ]", answerMark(domain.Answer{}))
}
