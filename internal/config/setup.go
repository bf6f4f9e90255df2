package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type question struct {
	key      string
	prompt   string
	required bool
	def      string
}

var setupQuestions = []question{
	{key: "DISCORD_TOKEN", prompt: "Enter your Discord bot token: ", required: true},
	{key: "CHANNEL_ID", prompt: "Enter the Discord channel ID where updates will be sent: ", required: true},
	{key: "TIMEZONE", prompt: fmt.Sprintf("Enter your timezone (default: %s): ", DefaultTimezone), def: DefaultTimezone},
}

// RunSetup интерактивно спрашивает обязательные переменные и пишет их в path
// в формате .env. Обязательные вопросы повторяются, пока ответ пустой.
func RunSetup(in io.Reader, out io.Writer, path string) error {
	fmt.Fprintln(out, "🥇 Gold Price Discord Bot Setup")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This script will help you configure your environment variables.")
	fmt.Fprintln(out)

	scanner := bufio.NewScanner(in)
	env := make(map[string]string, len(setupQuestions))

	for _, q := range setupQuestions {
		for {
			fmt.Fprint(out, q.prompt)
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return errors.Wrap(err, "read answer")
				}
				return errors.Errorf("input closed before %s was provided", q.key)
			}
			answer := strings.TrimSpace(scanner.Text())
			if q.required && answer == "" {
				fmt.Fprintln(out, "❌ This field is required. Please try again.")
				continue
			}
			if answer == "" {
				answer = q.def
			}
			env[q.key] = answer
			break
		}
	}

	if err := godotenv.Write(env, path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "✅ Environment file created successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "1. Run: go build -o gold-bot ./cmd/app")
	fmt.Fprintln(out, "2. Run: ./gold-bot")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Your bot is ready to go! 🚀")
	return nil
}
