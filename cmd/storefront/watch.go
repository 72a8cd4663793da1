package main

import (
	"context"

	"github.com/spf13/cobra"
)

func (s *shell) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow login and logout from other sessions until interrupted",
		Args:  cobra.NoArgs,
		RunE: s.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sub := s.app.Session().Subscribe(ctx)
			defer sub.Close()

			s.printStatus(ctx)
			for {
				select {
				case <-ctx.Done():
					return nil
				case msg, ok := <-sub.Receive():
					if !ok {
						return nil
					}
					origin := "local"
					if msg.Data.Remote {
						origin = "remote"
					}
					event := "updated"
					if msg.Data.Cleared {
						event = "cleared"
					}
					s.printf("[%s] %s %s\n", origin, msg.Data.Key, event)

					// Watchers resync the stores concurrently; refetch so the
					// printed summary reflects this change.
					if err := s.app.Cart().Fetch(ctx); err != nil {
						_ = s.alert(err)
					}
					s.printStatus(ctx)
				}
			}
		}),
	}
}

func (s *shell) printStatus(ctx context.Context) {
	state := s.app.Session().Sync(ctx)
	sum := s.app.Cart().Summary()
	if user := s.app.Session().User(); user != nil {
		s.printf("%s as %s, cart %d item(s) %s\n", state, user.Email, sum.Count, sum.Total.StringFixed(2))
		return
	}
	s.printf("%s, cart %d item(s) %s\n", state, sum.Count, sum.Total.StringFixed(2))
}
