package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ela-quiz-service/internal/bank"
	"ela-quiz-service/internal/config"
	"ela-quiz-service/internal/domain"
	"ela-quiz-service/internal/infra/memory"
	"ela-quiz-service/internal/session"
	"ela-quiz-service/internal/translate"
)

// NewPlayCmd builds the interactive terminal quiz. All quiz logic lives in
// the session engine; this command only renders its state and forwards input.
func NewPlayCmd(configPath, language *string) *cobra.Command {
	var (
		bankPath   string
		topic      string
		difficulty string
		shuffle    bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, playOptions{
				configPath: *configPath,
				language:   *language,
				bankPath:   bankPath,
				topic:      topic,
				difficulty: difficulty,
				shuffle:    shuffle,
			})
		},
	}
	cmd.Flags().StringVar(&bankPath, "bank", "", "path to a YAML bank file (built-in sample when empty)")
	cmd.Flags().StringVar(&topic, "topic", "", "practice only questions for this topic")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "practice only questions at this difficulty")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "shuffle question order")
	return cmd
}

type playOptions struct {
	configPath string
	language   string
	bankPath   string
	topic      string
	difficulty string
	shuffle    bool
}

func runPlay(cmd *cobra.Command, opts playOptions) error {
	out := cmd.OutOrStdout()

	b, err := loadBankArg(out, opts.bankPath)
	if err != nil {
		return err
	}
	criterion, err := criterionFromFlags(opts.topic, opts.difficulty)
	if err != nil {
		return err
	}
	lang := opts.language
	if lang == "" {
		lang = "en"
	}

	questions := bank.Select(b, criterion)
	if opts.shuffle {
		rand.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}

	quiz := session.New()
	if err := quiz.StartWithQuestions(questions); err != nil {
		if errors.Is(err, domain.ErrEmptySelection) {
			printEmptySelection(out, b, criterion)
			return nil
		}
		return err
	}

	resolver := buildResolver(opts.configPath)
	score := quiz.Score()
	fmt.Fprintf(out, "\n%s\n", b.Metadata.Title)
	fmt.Fprintf(out, "Practice (%s), %d questions. Type 'q' at any prompt to stop.\n", criterion, score.Total)

	in := bufio.NewScanner(cmd.InOrStdin())
	for {
		question, ok := quiz.CurrentQuestion()
		if !ok {
			break
		}
		position, total := quiz.Position()
		fmt.Fprintf(out, "\nQuestion %d/%d  [%s | %s]\n", position, total, question.Topic, question.Difficulty)
		if question.Passage != "" {
			fmt.Fprintf(out, "Passage: %s\n", question.Passage)
		}
		fmt.Fprintf(out, "%s\n", question.Prompt)
		for i, choice := range question.Choices {
			fmt.Fprintf(out, "  %d. %s\n", i+1, choice)
		}

		if quit := promptAnswer(cmd, in, out, quiz, resolver, question, lang); quit {
			break
		}
	}

	printResults(out, quiz, b.Metadata)
	return nil
}

// promptAnswer re-prompts until a valid answer is recorded or the player
// quits. Returns true on quit or input end.
func promptAnswer(cmd *cobra.Command, in *bufio.Scanner, out io.Writer, quiz *session.Session, resolver *translate.Resolver, question domain.Question, lang string) bool {
	for {
		fmt.Fprintf(out, "Your answer (1-%d) or 'q' to quit: ", len(question.Choices))
		if !in.Scan() {
			return true
		}
		raw := strings.ToLower(strings.TrimSpace(in.Text()))
		if raw == "q" || raw == "quit" {
			return true
		}
		selected, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", len(question.Choices))
			continue
		}

		record, err := quiz.SubmitAnswer(selected)
		var badIndex *domain.InvalidAnswerIndexError
		if errors.As(err, &badIndex) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d.\n", badIndex.Choices)
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			return true
		}

		if record.IsCorrect {
			fmt.Fprintln(out, "Correct!")
		} else {
			fmt.Fprintf(out, "Incorrect. The correct answer was: %s\n", question.Choices[question.CorrectAnswer-1])
		}
		if explanation := resolver.Resolve(cmd.Context(), question, lang); explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", explanation)
		}
		score := quiz.Score()
		fmt.Fprintf(out, "Score: %d/%d\n", score.Correct, score.Answered)
		return false
	}
}

func printResults(out io.Writer, quiz *session.Session, meta domain.BankMetadata) {
	score := quiz.Score()
	fmt.Fprintf(out, "\n--- Results: %s ---\n", meta.Title)
	if score.Answered == 0 {
		fmt.Fprintln(out, "No questions were attempted.")
		return
	}
	fmt.Fprintf(out, "Attempted: %d/%d\n", score.Answered, score.Total)
	fmt.Fprintf(out, "Correct:   %d\n", score.Correct)
	fmt.Fprintf(out, "Accuracy:  %.1f%%\n", score.Accuracy())
	if remaining := score.Total - score.Answered; remaining > 0 {
		fmt.Fprintf(out, "%d questions remaining - try again later.\n", remaining)
	}

	if byTopic := quiz.BreakdownByTopic(); len(byTopic) > 1 {
		fmt.Fprintln(out, "\nBy topic:")
		for _, topic := range sortedKeys(byTopic) {
			group := byTopic[topic]
			fmt.Fprintf(out, "  %s: %d/%d\n", topic, group.Correct, group.Attempted)
		}
	}
	if byDifficulty := quiz.BreakdownByDifficulty(); len(byDifficulty) > 1 {
		fmt.Fprintln(out, "\nBy difficulty:")
		for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
			if group, ok := byDifficulty[difficulty]; ok {
				fmt.Fprintf(out, "  %s: %d/%d\n", difficulty, group.Correct, group.Attempted)
			}
		}
	}
}

func printEmptySelection(out io.Writer, b domain.Bank, criterion domain.Criterion) {
	fmt.Fprintf(out, "No questions match %s.\n", criterion)
	stats := bank.Summarize(b)
	if len(stats.Topics) > 0 {
		fmt.Fprintln(out, "Available topics:")
		for _, topic := range bank.Topics(b) {
			fmt.Fprintf(out, "  %s (%d questions)\n", topic, stats.Topics[topic])
		}
	}
	if len(stats.Difficulties) > 0 {
		fmt.Fprintln(out, "Available difficulties:")
		for _, difficulty := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
			if count, ok := stats.Difficulties[difficulty]; ok {
				fmt.Fprintf(out, "  %s (%d questions)\n", difficulty, count)
			}
		}
	}
}

// loadBankArg loads the bank flag, falling back to the embedded sample bank.
func loadBankArg(out io.Writer, bankPath string) (domain.Bank, error) {
	if bankPath == "" {
		fmt.Fprintln(out, "No bank file given; using the built-in sample bank.")
		return bank.Sample(), nil
	}
	b, warnings, err := bank.LoadFile(bankPath)
	if err != nil {
		return domain.Bank{}, err
	}
	for _, warning := range warnings {
		log.Printf("%s: %s", bankPath, warning)
	}
	return b, nil
}

func criterionFromFlags(topic, difficulty string) (domain.Criterion, error) {
	if topic != "" && difficulty != "" {
		return domain.Criterion{}, errors.New("--topic and --difficulty are mutually exclusive")
	}
	switch {
	case topic != "":
		return domain.ByTopic(topic), nil
	case difficulty != "":
		return domain.ByDifficulty(difficulty), nil
	default:
		return domain.AllQuestions(), nil
	}
}

// buildResolver wires the explanation resolver from config. Config problems
// leave automatic translation off; manual translations still resolve.
func buildResolver(configPath string) *translate.Resolver {
	cache := memory.NewTranslationCache()
	cfg, err := config.Load(configPath)
	if err != nil {
		return translate.NewResolver(nil, cache, 0)
	}
	timeout := config.TTLDuration(cfg.Translator.Timeout, 5*time.Second)
	var provider translate.Provider
	if cfg.Translator.Endpoint != "" {
		provider = translate.NewHTTPProvider(cfg.Translator.Endpoint, cfg.Translator.APIKey, timeout)
	}
	return translate.NewResolver(provider, cache, timeout)
}

func sortedKeys(m map[string]domain.GroupScore) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
