package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/layer-3/walletgate/core"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or clear the stored wallet session",
	Long: `Works on the Redis-backed session record, so redis_url must be set.
Sealed records need the same session_key the server uses.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored session record",
	Args:  cobra.NoArgs,
	RunE:  runSessionShow,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored session record",
	Args:  cobra.NoArgs,
	RunE:  runSessionClear,
}

type sessionView struct {
	core.SessionRecord
	CreatedAt time.Time `json:"createdAt"`
	Expired   bool      `json:"expired"`
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if appConfig.RedisURL == "" {
		return errors.New("redis_url is not configured")
	}
	client, err := openRedis(ctx, appConfig.RedisURL)
	if err != nil {
		return err
	}
	defer client.Close()

	sessions, err := newSessionStore(appConfig, client)
	if err != nil {
		return err
	}

	record, err := sessions.Load(ctx)
	if errors.Is(err, core.ErrSessionNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "no stored session")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	out, err := json.MarshalIndent(sessionView{
		SessionRecord: record,
		CreatedAt:     record.CreatedAt(),
		Expired:       record.Expired(time.Now(), appConfig.Gate().SessionTTL),
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if appConfig.RedisURL == "" {
		return errors.New("redis_url is not configured")
	}
	client, err := openRedis(ctx, appConfig.RedisURL)
	if err != nil {
		return err
	}
	defer client.Close()

	sessions, err := newSessionStore(appConfig, client)
	if err != nil {
		return err
	}
	if err := sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
	return nil
}
