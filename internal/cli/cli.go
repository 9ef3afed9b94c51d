// Package cli 提供 mealplan 命令列介面。
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"meal-planner/internal/core/extractor"
	"meal-planner/internal/core/planner"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const name = "mealplan"

// 輸出格式
const (
	OutputJSON     = "json"
	OutputYAML     = "yaml"
	OutputMarkdown = "markdown"
)

// overridden during build with ldflags
var version = "dev"

// Planner 命令需要的流程
type Planner interface {
	ExtractCriteria(ctx context.Context, text string) (*extractor.Criteria, error)
	Plan(ctx context.Context, text string) (*planner.Plan, error)
	Render(ctx context.Context, plan *planner.Plan) (string, error)
}

// Factory 依日誌級別建立流程；回傳的 close 在命令結束時呼叫
type Factory func(ctx context.Context, logLevel string) (p Planner, closeFn func() error, err error)

// New 建立根命令
func New(factory Factory, stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Plan meals from a free-text request using recipe search",
		Version: version,
		Reader:  stdin,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			planCmd(factory, stdin, stdout),
		},
	}
}

func planCmd(factory Factory, stdin io.Reader, stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Extract meal criteria and search recipes for every planned meal",
		ArgsUsage: "<text...>",
		Description: `Turns a free-text request into structured criteria, one recipe search per meal,
and prints the result. Text is read from the arguments, or from stdin when none are given.

Example:
  mealplan plan "three low carb dinners for two, no peanuts"`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   OutputJSON,
				Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(outputs(), ", ")),
			},
			&cli.BoolFlag{
				Name:    "criteria-only",
				Aliases: []string{"c"},
				Usage:   "only extract criteria, skip recipe search",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			output := strings.ToLower(cmd.String("output"))
			if !validOutput(output) {
				return fmt.Errorf("unknown output format: %q", output)
			}

			text, err := readText(cmd.Args().Slice(), stdin)
			if err != nil {
				return err
			}

			p, closeFn, err := factory(ctx, cmd.String("log-level"))
			if err != nil {
				return fmt.Errorf("failed to initialize planner: %w", err)
			}
			if closeFn != nil {
				defer closeFn()
			}

			if cmd.Bool("criteria-only") {
				c, err := p.ExtractCriteria(ctx, text)
				if err != nil {
					return err
				}
				return write(ctx, stdout, p, &planner.Plan{Criteria: c}, output, true)
			}

			// 所有餐點都失敗時仍輸出結果，再回傳錯誤
			result, planErr := p.Plan(ctx, text)
			if result == nil {
				return planErr
			}
			if err := write(ctx, stdout, p, result, output, false); err != nil {
				return err
			}
			return planErr
		},
	}
}

func write(ctx context.Context, w io.Writer, p Planner, result *planner.Plan, output string, criteriaOnly bool) error {
	var v any = result
	if criteriaOnly {
		v = result.Criteria
	}

	switch output {
	case OutputMarkdown:
		md, err := p.Render(ctx, result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, md)
		return err
	case OutputYAML:
		data, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

// toYAML 經由 JSON 轉換，使 YAML 鍵名與 JSON 標籤一致
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	out, err := yaml.Marshal(normalize(generic))
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return out, nil
}

// normalize 將 json.Number 轉為 yaml 能輸出為數字的型別
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

func readText(args []string, stdin io.Reader) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" && stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		return "", fmt.Errorf("meal plan text is required")
	}
	return text, nil
}

func outputs() []string {
	return []string{OutputJSON, OutputYAML, OutputMarkdown}
}

func validOutput(s string) bool {
	return slices.Contains(outputs(), s)
}
