package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"strings"

	"github.com/jlindh/studiocast/pkg/client"

	"github.com/google/uuid"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "server url")
	tokenFlag := flag.String("token", "", "server token")

	flag.Parse()

	ctx := context.Background()

	options := []client.RequestOption{}

	if *tokenFlag != "" {
		options = append(options, client.WithToken(*tokenFlag))
	}

	c := client.New(*urlFlag, options...)

	reader := bufio.NewReader(os.Stdin)
	output := os.Stdout

	var script string
	var session *client.Session

LOOP:
	for {
		output.WriteString(">>> ")
		input, err := reader.ReadString('\n')

		if err != nil {
			panic(err)
		}

		input = strings.TrimSpace(input)

		if input == "" {
			continue LOOP
		}

		if strings.HasPrefix(input, "/") {
			cmd, rest, _ := strings.Cut(input, " ")

			switch strings.ToLower(cmd) {
			case "/script":
				script, err = c.Podcasts.Script(ctx, client.ScriptRequest{
					Topic: rest,
				})

				if err != nil {
					output.WriteString(err.Error() + "\n")
					continue LOOP
				}

				output.WriteString(script + "\n\n")

			case "/audio":
				if script == "" {
					output.WriteString("no script yet (use /script <topic>)\n")
					continue LOOP
				}

				audio, err := c.Podcasts.Audio(ctx, script)

				if err != nil {
					output.WriteString(err.Error() + "\n")
					continue LOOP
				}

				fmt.Println("Saved: " + save(audio.Content, audio.ContentType))

			case "/produce":
				production, err := c.Podcasts.Produce(ctx, rest)

				if err != nil {
					output.WriteString(err.Error() + "\n")
					continue LOOP
				}

				output.WriteString(production.URL + "\n\n")

			case "/research":
				content, err := c.Research.New(ctx, rest)

				if err != nil {
					output.WriteString(err.Error() + "\n")
					continue LOOP
				}

				output.WriteString(content + "\n\n")

			case "/listen":
				if script == "" {
					output.WriteString("no script yet (use /script <topic>)\n")
					continue LOOP
				}

				session, err = c.Sessions.New(ctx, script)

				if err != nil {
					output.WriteString(err.Error() + "\n")
					continue LOOP
				}

				output.WriteString("session " + session.ID + "\n\n")

			case "/reset":
				script = ""
				session = nil

			default:
				output.WriteString("Unknown command\n")
			}

			continue LOOP
		}

		// plain input is a follow-up question for the active session
		if session == nil {
			output.WriteString("no session yet (use /listen)\n")
			continue LOOP
		}

		answer, err := c.Sessions.Question(ctx, session.ID, input, session.Position)

		if err != nil {
			output.WriteString(err.Error() + "\n")
			continue LOOP
		}

		fmt.Println("Saved: " + save(answer.Content, answer.ContentType))
		fmt.Printf("Resume at: %.1fs\n\n", answer.ResumePosition)
	}
}

func save(data []byte, contentType string) string {
	name := uuid.New().String()

	if ext, _ := mime.ExtensionsByType(contentType); len(ext) > 0 {
		name += ext[0]
	} else {
		name += ".mp3"
	}

	os.WriteFile(name, data, 0600)

	return name
}
