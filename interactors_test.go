package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadReport(t *testing.T) {
	t.Parallel()

	station, raw, ok := readReport(strings.NewReader("\n\n  KJFK 291851Z 27015G25KT 3SM RA BKN008 OVC015 12/08 Q1013 \nEGLL\n"))
	require.True(t, ok)
	assert.Equal(t, "KJFK", station)
	assert.Equal(t, "KJFK 291851Z 27015G25KT 3SM RA BKN008 OVC015 12/08 Q1013", raw)

	_, _, ok = readReport(strings.NewReader(" \n\t\n"))
	assert.False(t, ok)
}

func TestNormalizeStationCode(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]string{"kjfk": "KJFK", " EgLl\n": "EGLL", "EDMA": "EDMA"} {
		got, err := normalizeStationCode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	for _, input := range []string{"", "JFK", "KJFKX", "K1FK"} {
		_, err := normalizeStationCode(input)
		assert.Error(t, err, input)
	}

	_, err := getStationCodeFromArgs(nil)
	assert.EqualError(t, err, "no station code provided")
}

func TestProcessMETAR(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{reports: map[string][]string{"KJFK": {jfkIFR}}}
	var out bytes.Buffer

	err := processMETAR(context.Background(), &out, fetcher, "KJFK", "", DefaultThresholds(), reportOptions{})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Fetching METAR for KJFK...")
	assert.Contains(t, out.String(), jfkIFR+"\n")
	assert.Contains(t, out.String(), "Flight Rules: IFR (Vis: 3.0 SM, Ceil: 800 ft)")
	assert.Equal(t, 1, fetcher.callCount())
}

func TestProcessMETAR_piped(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	var out bytes.Buffer

	err := processMETAR(context.Background(), &out, fetcher, "EGLL", egllOK, DefaultThresholds(), reportOptions{noRaw: true})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Fetching")
	assert.NotContains(t, out.String(), egllOK)
	assert.Contains(t, out.String(), "Visibility: CAVOK (>10 km)")
	assert.Contains(t, out.String(), "Flight Rules: VFR (Vis: 10.0 SM)")
	assert.Zero(t, fetcher.callCount())

	out.Reset()
	err = processMETAR(context.Background(), &out, fetcher, "EGLL", egllOK, DefaultThresholds(), reportOptions{noDecode: true})
	require.NoError(t, err)
	assert.Equal(t, egllOK+"\n", out.String())
}

func TestProcessMETAR_fetchError(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{err: errors.New("unexpected status code: 404")}
	err := processMETAR(context.Background(), &bytes.Buffer{}, fetcher, "ZZZZ", "", DefaultThresholds(), reportOptions{})
	assert.EqualError(t, err, "unexpected status code: 404")

	fetcher = &stubFetcher{reports: map[string][]string{"ZZZZ": {" "}}}
	err = processMETAR(context.Background(), &bytes.Buffer{}, fetcher, "ZZZZ", "", DefaultThresholds(), reportOptions{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}
