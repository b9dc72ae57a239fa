package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/audio"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/capture"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/models"
	"github.com/Utkarsh07/AshaHealth-scribe-app/internal/session"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture a visit and review the generated note",
		Long:  "Record from the microphone (or use --file) and walk the visit through transcription, note generation, review, and save.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(cmd.Context(), deps, file, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Use an existing audio file instead of the microphone")

	return cmd
}

func runRecord(ctx context.Context, deps *Dependencies, file string, in io.Reader, out io.Writer) error {
	var source capture.ChunkSource
	if file == "" {
		if err := audio.CheckFFmpeg(); err != nil {
			return err
		}
		mic := audio.NewMicSource()
		mic.SampleRate = deps.Config.SampleRate
		source = mic
	}

	api := deps.apiClient()
	sess := session.New(capture.NewController(source), api, api, deps.transcriptStore(), deps.Log)
	scanner := bufio.NewScanner(in)

	for {
		if err := acquireAudio(ctx, sess, file, scanner, out); err != nil {
			return err
		}

		fmt.Fprintln(out, "Transcribing and generating note...")
		if err := sess.Submit(ctx); err != nil {
			code, cause := sess.Err()
			fmt.Fprintf(out, "Error (%s): %s\n", code, cause)
			if !promptYesNo(scanner, out, "Retry from the beginning?") {
				return nil
			}
			if rerr := sess.Retry(); rerr != nil {
				return rerr
			}
			continue
		}

		if done, err := reviewLoop(ctx, sess, scanner, out); done || err != nil {
			return err
		}
		// review ended in a retry; start over
	}
}

func acquireAudio(ctx context.Context, sess *session.Session, file string, scanner *bufio.Scanner, out io.Writer) error {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		return sess.SelectFile(filepath.Base(file), mimeForFile(file), data)
	}

	if err := sess.StartCapture(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Recording... press Enter to stop.")
	scanner.Scan()
	return nil
}

// reviewLoop drives the interactive review of a generated note. Returns
// done=true when the user quits; done=false means the session was reset
// and capture should start over.
func reviewLoop(ctx context.Context, sess *session.Session, scanner *bufio.Scanner, out io.Writer) (bool, error) {
	printNote(out, sess)

	for {
		fmt.Fprint(out, "\n[show | edit <section> | save | quit] > ")
		if !scanner.Scan() {
			return true, scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "show":
			printNote(out, sess)

		case "edit":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: edit subjective|objective|assessment|plan")
				continue
			}
			sec, ok := models.ParseSection(strings.ToLower(fields[1]))
			if !ok {
				fmt.Fprintf(out, "unknown section %q\n", fields[1])
				continue
			}
			fmt.Fprintf(out, "Enter new %s text, end with a single '.' line:\n", sec.Title())
			text := readMultiline(scanner)
			if err := sess.EditSection(sec, text); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printSection(out, sess, sec)

		case "save":
			if err := sess.Save(ctx); err != nil {
				code, cause := sess.Err()
				fmt.Fprintf(out, "Save failed (%s): %s\n", code, cause)
				if !promptYesNo(scanner, out, "Retry from the beginning? (the draft is discarded)") {
					return true, nil
				}
				if rerr := sess.Retry(); rerr != nil {
					return true, rerr
				}
				return false, nil
			}
			fmt.Fprintf(out, "Saved note %s\n", sess.SavedNoteID())

		case "quit", "q":
			sess.Cancel()
			return true, nil

		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
		}
	}
}

func readMultiline(scanner *bufio.Scanner) string {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func promptYesNo(scanner *bufio.Scanner, out io.Writer, q string) bool {
	fmt.Fprintf(out, "%s [y/N] ", q)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// printNote renders the working copy with per-line provenance.
func printNote(out io.Writer, sess *session.Session) {
	for _, sec := range models.Sections() {
		printSection(out, sess, sec)
	}
}

func printSection(out io.Writer, sess *session.Session, sec models.SectionID) {
	fmt.Fprintf(out, "\n## %s\n", sec.Title())
	for _, line := range sess.ReviewLines(sec) {
		fmt.Fprintln(out, line.RawLine)
		if line.Fragment != nil {
			fmt.Fprintf(out, "    source: %q\n", line.Fragment.SourceText)
		} else {
			fmt.Fprintln(out, "    source: (none)")
		}
	}
}

func mimeForFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	case ".m4a":
		return "audio/mp4"
	default:
		if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
