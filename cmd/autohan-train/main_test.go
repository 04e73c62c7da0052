package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autohan/internal/ngram"
)

func TestTrainFromCorpora(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(first, []byte("한글 한글 한글\n안녕 안녕\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("한글을 배웁니다\n"), 0o600))
	output := filepath.Join(dir, "model.json")

	var out bytes.Buffer
	err := mainE(context.Background(), []string{"--min-freq", "2", "--output", output, "--top", "3", first, second}, &out)
	require.NoError(t, err)

	model, err := ngram.Load(output)
	require.NoError(t, err)
	assert.EqualValues(t, 4, model.Bigram('한', '글'))
	assert.EqualValues(t, 2, model.Bigram('안', '녕'))
	assert.Zero(t, model.Bigram('글', '을'), "below min-freq")
	assert.Zero(t, model.Bigram('글', '안'), "bigrams never cross whitespace")
	assert.Equal(t, "a.txt,b.txt", model.Metadata().Source)

	assert.Contains(t, out.String(), "top 3 syllables:")
	assert.Contains(t, out.String(), "한 gks")
}

func TestWriteSampleModel(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, mainE(context.Background(), []string{"--sample", "--output", output, "--top", "0"}, &bytes.Buffer{}))

	model, err := ngram.Load(output)
	require.NoError(t, err)
	assert.False(t, model.Empty())
	assert.Positive(t, model.Bigram('안', '녕'))
}

func TestTrainErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, mainE(context.Background(), []string{"--output", filepath.Join(dir, "m.json")}, &bytes.Buffer{}))
	assert.Error(t, mainE(context.Background(), []string{"--min-freq", "0", "--sample"}, &bytes.Buffer{}))
	assert.Error(t, mainE(context.Background(), []string{"--output", filepath.Join(dir, "m.json"), filepath.Join(dir, "missing.txt")}, &bytes.Buffer{}))
	_, err := os.Stat(filepath.Join(dir, "m.json"))
	assert.True(t, os.IsNotExist(err), "failed runs must not leave a model behind")
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, mainE(context.Background(), []string{"-h"}, &out))
	assert.Contains(t, out.String(), "min-freq")
}
