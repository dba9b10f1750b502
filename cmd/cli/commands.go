package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	team1Name, team2Name     string
	team1Roster, team2Roster []string
	tables                   int
	format                   string
	matchCount               int
	scoreDelta               int
)

func init() {
	createCmd.Flags().StringVar(&team1Name, "team1", "Home", "Name of the first team")
	createCmd.Flags().StringVar(&team2Name, "team2", "Away", "Name of the second team")
	createCmd.Flags().StringSliceVar(&team1Roster, "roster1", nil, "Four players of the first team, in roster order")
	createCmd.Flags().StringSliceVar(&team2Roster, "roster2", nil, "Four players of the second team, in roster order")
	createCmd.Flags().IntVar(&tables, "tables", 2, "Number of tables")
	createCmd.Flags().StringVar(&format, "format", "acquired", "acquired, nonAcquired or custom")
	createCmd.Flags().IntVar(&matchCount, "matches", 0, "Number of singles fixtures for the custom format")
	scoreCmd.Flags().IntVar(&scoreDelta, "delta", 1, "1 to add a point, -1 to correct a mistake")

	rootCmd.AddCommand(healthCmd, metricsCmd, encountersCmd, createCmd, matchesCmd, tallyCmd, nextCmd,
		checkCmd, reconcileCmd, archiveCmd, currentCmd)
	rootCmd.AddCommand(matchCommand("launch", "Open the first set of a match"))
	rootCmd.AddCommand(matchCommand("launch-set", "Open the next set of a match"))
	rootCmd.AddCommand(matchCommand("terminate", "Finish a decided match"))
	rootCmd.AddCommand(matchCommand("reset", "Reset a match to waiting"))
	rootCmd.AddCommand(matchCommand("cancel", "Cancel a match"))
	rootCmd.AddCommand(scoreCmd, tableCmd, doublesCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var encountersCmd = &cobra.Command{
	Use:   "encounters",
	Short: "List the encounters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/encounters" + encounterQuery())
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Prepare a new encounter and make it current",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]any{
			"team1_name":       team1Name,
			"team2_name":       team2Name,
			"team1_roster":     team1Roster,
			"team2_roster":     team2Roster,
			"number_of_tables": tables,
			"format":           format,
			"match_count":      matchCount,
			"make_current":     true,
		})
		if err != nil {
			return err
		}
		return performPostRequest("/encounters", body)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the fixtures of an encounter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/encounters/matches" + encounterQuery())
	},
}

var tallyCmd = &cobra.Command{
	Use:   "tally",
	Short: "Show the running score of an encounter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/encounters/tally" + encounterQuery())
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the fixtures that can go on a free table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/encounters/next" + encounterQuery())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Rerun the completion check of an encounter",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/encounters/check"+encounterQuery(), nil)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Rebuild team counters from the stored matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/encounters/reconcile"+encounterQuery(), nil)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive [encounterID]",
	Short: "Archive an encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/encounters/archive?encounterID="+url.QueryEscape(args[0]), nil)
	},
}

var currentCmd = &cobra.Command{
	Use:   "current [encounterID]",
	Short: "Make an encounter the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/encounters/current?encounterID="+url.QueryEscape(args[0]), nil)
	},
}

// matchCommand builds a command that posts to /matches/<name> for one match.
func matchCommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [matchID]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return performPostRequest("/matches/"+name+"?matchID="+url.QueryEscape(args[0]), nil)
		},
	}
}

var scoreCmd = &cobra.Command{
	Use:   "score [matchID] [side1|side2]",
	Short: "Score a point for a side",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("matchID", args[0])
		q.Set("side", args[1])
		q.Set("delta", strconv.Itoa(scoreDelta))
		return performPostRequest("/matches/score?"+q.Encode(), nil)
	},
}

var tableCmd = &cobra.Command{
	Use:   "table [matchID] [table]",
	Short: "Start a match on a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := url.Values{}
		q.Set("matchID", args[0])
		q.Set("table", args[1])
		return performPostRequest("/matches/table?"+q.Encode(), nil)
	},
}

var doublesCmd = &cobra.Command{
	Use:   "doubles [matchID] [p1,p2] [p3,p4]",
	Short: "Set the pairs of the doubles match",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string][]string{
			"side1": strings.Split(args[1], ","),
			"side2": strings.Split(args[2], ","),
		})
		if err != nil {
			return err
		}
		return performPostRequest("/matches/doubles?matchID="+url.QueryEscape(args[0]), body)
	},
}

func encounterQuery() string {
	if encounterID == "" {
		return ""
	}
	return "?encounterID=" + url.QueryEscape(encounterID)
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	var pretty bytes.Buffer
	if json.Indent(&pretty, body, "", "  ") == nil {
		pretty.WriteTo(os.Stdout)
		fmt.Println()
	} else {
		fmt.Println(string(body))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("server answered %s", resp.Status)
	}
	return nil
}
