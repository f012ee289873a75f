package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/jlindh/studiocast/pkg/provider"
)

// Generator produces speaker-labeled podcast scripts, short research
// summaries and follow-up answers through a chat completer. All conversation
// context is passed per call; the generator itself holds no session state.
type Generator struct {
	completer provider.Completer

	hostA string
	hostB string
}

type Option func(*Generator)

func WithHosts(a, b string) Option {
	return func(g *Generator) {
		g.hostA = a
		g.hostB = b
	}
}

func NewGenerator(completer provider.Completer, options ...Option) *Generator {
	g := &Generator{
		completer: completer,

		hostA: "Chris",
		hostB: "Jenna",
	}

	for _, option := range options {
		option(g)
	}

	return g
}

type ScriptRequest struct {
	Topic    string
	Prospect string

	Question string
}

// Script generates a two-host dialogue following the "<Speaker>: <text>"
// line convention used by the transcript parser.
func (g *Generator) Script(ctx context.Context, req ScriptRequest) (string, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return "", provider.NewValidationError("topic required")
	}

	prospect := req.Prospect

	if prospect == "" {
		prospect = "the prospect"
	}

	question := req.Question

	if question == "" {
		question = "No question provided"
	}

	prompt := fmt.Sprintf(`Write a podcast script with exactly two hosts:

- Host: %[1]s
- Co-host: %[2]s

Do not mention any other names or a narrator.
Do not include sound directions like "[music fades in]" or "[theme fades]".

Make it sound like a natural, energetic, real podcast conversation between %[1]s and %[2]s. They should discuss the benefits of %[3]s's business in the %[4]s field.

If a user question is provided, include it inside the dialogue naturally.

The format must be:

%[1]s: ...
%[2]s: ...
%[1]s: ...
%[2]s: ...

User Question: %[5]q

DO NOT ADD ANYTHING OUTSIDE THE DIALOGUE.`, g.hostA, g.hostB, prospect, req.Topic, question)

	return g.complete(ctx, "You are a helpful creative podcast script writer.", prompt, 500)
}

// Answer generates a short spoken reply to a listener question, constrained
// by the prompt to roughly fifteen seconds of speech.
func (g *Generator) Answer(ctx context.Context, question, scriptContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", provider.NewValidationError("question required")
	}

	prompt := fmt.Sprintf(`You are two podcast hosts (%[1]s and %[2]s) having a conversation.
You've been discussing the following topic:

%[3]s

Now, a listener has asked the following question:
%[4]q

Please provide a brief, conversational response answering this question.
Keep the whole response under 40 words so it stays around fifteen seconds when spoken.
Format your response as:

%[1]s: [response]
%[2]s: [response]`, g.hostA, g.hostB, scriptContext, question)

	return g.complete(ctx, "You are a helpful podcast host assistant.", prompt, 250)
}

// Research generates a bullet-point research summary used as script input.
func (g *Generator) Research(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", provider.NewValidationError("topic required")
	}

	prompt := fmt.Sprintf("Generate research about: %s. Focus on key benefits for customers in this industry. Include the prospect's name if mentioned.", topic)

	return g.complete(ctx, "You are a research assistant. Generate concise, bullet-point research summaries focused on key benefits and insights. Keep it under 300 words.", prompt, 300)
}

func (g *Generator) complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	temperature := float32(0.7)

	completion, err := g.completer.Complete(ctx,
		[]provider.Message{
			provider.SystemMessage(system),
			provider.UserMessage(prompt),
		},
		&provider.CompleteOptions{
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		},
	)

	if err != nil {
		return "", err
	}

	if completion.Message == nil || completion.Message.Text() == "" {
		return "", provider.NewFatalError("no content generated")
	}

	return completion.Message.Text(), nil
}
