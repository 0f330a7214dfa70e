package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readFromStdin reads a raw report from stdin if one is piped in
func readFromStdin() (string, string, bool) {
	// Check if input is being piped in (stdin)
	info, err := os.Stdin.Stat()
	stdinHasData := (err == nil && info.Mode()&os.ModeCharDevice == 0)

	if !stdinHasData {
		return "", "", false
	}

	return readReport(os.Stdin)
}

// readReport returns the station code and text of the first non-empty line
func readReport(r io.Reader) (string, string, bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rawInput := strings.TrimSpace(scanner.Text())

		// Try to extract station code from the raw input
		parts := strings.Fields(rawInput)
		if len(parts) > 0 {
			return parts[0], rawInput, true
		}
	}

	return "", "", false
}

// normalizeStationCode upper-cases a code and checks it is 4 letters
func normalizeStationCode(input string) (string, error) {
	stationCode := strings.ToUpper(strings.TrimSpace(input))
	if !stationCodeRegex.MatchString(stationCode) {
		return "", fmt.Errorf("invalid station code %q: must be 4 letters", stationCode)
	}
	return stationCode, nil
}

// getStationCodeFromArgs gets station code from command-line args
func getStationCodeFromArgs(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("no station code provided")
	}
	return normalizeStationCode(args[0])
}

// promptForStationCode prompts the user for a station code
func promptForStationCode(in io.Reader, out io.Writer) (string, error) {
	reader := bufio.NewReader(in)
	fmt.Fprint(out, "Enter ICAO airport code (e.g., EDMA, KJFK): ")
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return normalizeStationCode(input)
}
