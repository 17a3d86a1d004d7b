package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/johari"
	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
	"github.com/spf13/cobra"
)

// errTooFewTraits is the submission gate of the command line.
type errTooFewTraits struct {
	Selected int
	Min      int
}

func (e *errTooFewTraits) Error() string {
	return fmt.Sprintf("select at least %d traits (got %d)", e.Min, e.Selected)
}

func vocabCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "List the traits of the assessment kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.assessment()
			if err != nil {
				return err
			}
			v := as.Vocabulary()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d traits, select at least %d\n", v.Kind(), v.Len(), v.MinSelection())
			for _, name := range v.Names() {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func selfCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "self TRAIT...",
		Short: "Submit or replace your own assessment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.assessment()
			if err != nil {
				return err
			}
			if err := gate(as, args); err != nil {
				return err
			}

			set, err := as.SubmitSelf(cmd.Context(), subject.ID(id), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s self-assessment for %s: %s\n",
				as.Kind(), id, strings.Join(set.Names(as.Vocabulary()), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "subject", "s", "", "Your subject id")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func peerCmd(a *app) *cobra.Command {
	var id, target string

	cmd := &cobra.Command{
		Use:   "peer TRAIT...",
		Short: "Describe another subject",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.assessment()
			if err != nil {
				return err
			}
			if err := gate(as, args); err != nil {
				return err
			}

			set, err := as.SubmitPeer(cmd.Context(), subject.ID(target), subject.ID(id), args)

			var self *subject.ErrSelfAssessmentRejected
			var missing *subject.ErrTargetNotFound
			switch {
			case errors.As(err, &self):
				return errors.New("you cannot contribute to yourself; use the self command")
			case errors.As(err, &missing):
				return fmt.Errorf("%s has not completed their own %s assessment yet", missing.Target, as.Kind())
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved your %s assessment of %s: %s\n",
				as.Kind(), target, strings.Join(set.Names(as.Vocabulary()), ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "subject", "s", "", "Your subject id")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Subject id of the person you describe")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func queryCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "query SUBJECT",
		Short: "Show the window of a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.assessment()
			if err != nil {
				return err
			}

			res, err := as.Query(cmd.Context(), subject.ID(args[0]))
			var nf *subject.ErrNotFound
			if errors.As(err, &nf) {
				return fmt.Errorf("no %s assessment found for %s", as.Kind(), nf.ID)
			}
			if err != nil {
				return err
			}

			switch output {
			case "json":
				return renderJSON(cmd.OutOrStdout(), as.Kind(), res)
			case "text":
				renderText(cmd.OutOrStdout(), as.Kind(), res)
				return nil
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	return cmd
}

func subjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "subjects",
		Short: "List subjects that completed a self-assessment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := a.assessment()
			if err != nil {
				return err
			}
			ids, err := as.Subjects(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

// gate enforces the minimum selection of the kind on recognised traits.
func gate(as *johari.Assessment, names []string) error {
	v := as.Vocabulary()
	selected := traitset.FromNames(v, names).Count()
	if selected < v.MinSelection() {
		return &errTooFewTraits{Selected: selected, Min: v.MinSelection()}
	}
	return nil
}
