package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gnzdotmx/dailyshorts/internal/services/youtube"
	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var (
	clientSecretPath string
	callbackPort     int
	authTimeout      time.Duration
	tokenOutputPath  string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Obtain the YouTube upload token once",
	Long: `Run the OAuth consent flow in the browser and print the two values the
pipeline reads from YOUTUBE_TOKEN and YOUTUBE_CLIENT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ExpandHomeDir(clientSecretPath)
		if err != nil {
			return err
		}
		clientJSON, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read client secret file: %w", err)
		}
		oauthCfg, err := google.ConfigFromJSON(clientJSON, youtube.UploadScope)
		if err != nil {
			return &utils.ValidationError{Field: "client-secret", Message: "invalid OAuth client JSON", Err: err}
		}

		state := uuid.New().String()
		server := utils.NewOAuthCallbackServer(state)
		if err := server.Start(callbackPort); err != nil {
			return err
		}
		defer func() {
			if err := server.Stop(); err != nil {
				utils.LogWarning("%v", err)
			}
		}()
		oauthCfg.RedirectURL = server.RedirectURL()

		authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
		utils.LogInfo("Sign in with the channel account and allow the upload scope:")
		utils.LogInfo("%s", authURL)
		if err := server.OpenURL(authURL); err != nil {
			utils.LogWarning("Could not open a browser, open the URL above manually: %v", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), authTimeout)
		defer cancel()
		code, err := server.WaitForCode(ctx)
		if err != nil {
			return fmt.Errorf("no authorization code received: %w", err)
		}

		token, err := oauthCfg.Exchange(ctx, code)
		if err != nil {
			return &utils.ExternalCallError{Service: "oauth", Err: err}
		}
		if token.RefreshToken == "" {
			utils.LogWarning("No refresh token returned; revoke the app's access and run auth again")
		}

		tokenJSON, err := youtube.AuthorizedUserJSON(oauthCfg, token)
		if err != nil {
			return err
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, clientJSON); err != nil {
			return fmt.Errorf("failed to compact client JSON: %w", err)
		}

		if tokenOutputPath != "" {
			if err := utils.WriteTextFile(tokenOutputPath, tokenJSON+"\n"); err != nil {
				return err
			}
			utils.LogVerbose("Token backup written to %s", tokenOutputPath)
		}

		utils.LogSuccess("Authorization successful")
		fmt.Println(utils.Rule("━", 60))
		fmt.Println("YOUTUBE_TOKEN")
		fmt.Println(utils.Rule("━", 60))
		fmt.Println(tokenJSON)
		fmt.Println(utils.Rule("━", 60))
		fmt.Println("YOUTUBE_CLIENT")
		fmt.Println(utils.Rule("━", 60))
		fmt.Println(compact.String())
		return nil
	},
}

func init() {
	authCmd.Flags().StringVarP(&clientSecretPath, "client-secret", "s", "youtube_client_secret.json", "OAuth client secret JSON downloaded from the Google Cloud console")
	authCmd.Flags().IntVarP(&callbackPort, "port", "p", 0, "Local callback port (0 picks a free one)")
	authCmd.Flags().DurationVar(&authTimeout, "timeout", 5*time.Minute, "How long to wait for the consent")
	authCmd.Flags().StringVarP(&tokenOutputPath, "output", "o", "", "Also write the token JSON to this file")

	rootCmd.AddCommand(authCmd)
}
