// Package shell provides an interactive REPL over a host.Runtime.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/b0tShaman/neuro-core/config"
	"github.com/b0tShaman/neuro-core/data"
	"github.com/b0tShaman/neuro-core/host"
)

// Shell is the interactive command-line interface.
type Shell struct {
	rt  *host.Runtime
	cfg config.ShellConfig
}

// New creates a new interactive shell.
func New(rt *host.Runtime, cfg config.ShellConfig) *Shell {
	return &Shell{rt: rt, cfg: cfg}
}

var errQuit = errors.New("quit")

// Run starts the interactive loop on the terminal.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.cfg.Prompt,
		HistoryFile:     s.cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewCompleter(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	stop := closeOnDone(ctx, rl)
	defer stop()

	fmt.Println("Type help for the command list, quit to leave.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		if err := s.Exec(line, os.Stdout); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Printf("Error: %v\n", err)
		}
	}
}

// Exec runs one command line and writes its result to out.
func (s *Shell) Exec(line string, out io.Writer) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "quit", "exit", "q":
		return errQuit

	case "help", "h":
		fmt.Fprint(out, helpText)

	case "layer":
		if err := wantArgs(cmd, args, 3); err != nil {
			return err
		}
		in, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("input size: %w", err)
		}
		outSize, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("output size: %w", err)
		}
		id, err := s.rt.CreateLayer(in, outSize, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "layer %d\n", id)

	case "network":
		if len(args) == 0 {
			return fmt.Errorf("usage: network ID...")
		}
		ids, err := parseInts(args)
		if err != nil {
			return err
		}
		id, err := s.rt.CreateNetwork(ids)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "network %d\n", id)

	case "forward":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("network id: %w", err)
		}
		x, err := parseVec(args[1])
		if err != nil {
			return err
		}
		y, err := s.rt.Forward(id, x)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatVec(y))

	case "train":
		if err := wantArgs(cmd, args, 4); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("network id: %w", err)
		}
		x, err := parseVec(args[1])
		if err != nil {
			return err
		}
		target, err := parseVec(args[2])
		if err != nil {
			return err
		}
		lr, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("learning rate: %w", err)
		}
		if err := s.rt.TrainStep(id, x, target, lr); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")

	case "weights":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("layer id: %w", err)
		}
		w, b, err := s.rt.GetWeights(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "weights %s\nbiases %s\n", formatMatrix(w), formatVec(b))

	case "setweights":
		if err := wantArgs(cmd, args, 3); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("layer id: %w", err)
		}
		w, err := parseMatrix(args[1])
		if err != nil {
			return err
		}
		b, err := parseVec(args[2])
		if err != nil {
			return err
		}
		if err := s.rt.SetWeights(id, w, b); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")

	case "relu", "sigmoid", "tanh", "softmax":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		var arg any
		if strings.Contains(args[0], ",") || cmd == "softmax" {
			xs, err := parseVec(args[0])
			if err != nil {
				return err
			}
			arg = xs
		} else {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			arg = x
		}
		res, err := s.rt.Activate(cmd, arg)
		if err != nil {
			return err
		}
		switch v := res.(type) {
		case []float64:
			fmt.Fprintln(out, formatVec(v))
		case float64:
			fmt.Fprintln(out, formatFloat(v))
		}

	case "add":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		a, err := parseVec(args[0])
		if err != nil {
			return err
		}
		b, err := parseVec(args[1])
		if err != nil {
			return err
		}
		sum, err := s.rt.TensorAdd(a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatVec(sum))

	case "matmul":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		a, err := parseMatrix(args[0])
		if err != nil {
			return err
		}
		b, err := parseMatrix(args[1])
		if err != nil {
			return err
		}
		prod, err := s.rt.TensorMultiply(a, b)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatMatrix(prod))

	case "transpose":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		m, err := parseMatrix(args[0])
		if err != nil {
			return err
		}
		tr, err := s.rt.TensorTranspose(m)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatMatrix(tr))

	case "reason":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		items := strings.Split(args[1], ",")
		values := make([]any, len(items))
		for i, item := range items {
			values[i] = data.ParseValue(item).Interface()
		}
		res, err := s.rt.SymbolicReasoning(values, args[0])
		if err != nil {
			return err
		}
		if f, ok := res.(float64); ok {
			fmt.Fprintln(out, formatFloat(f))
		} else {
			fmt.Fprintln(out, res)
		}

	case "cognitive":
		if err := wantArgs(cmd, args, 1); err != nil {
			return err
		}
		xs, err := parseVec(args[0])
		if err != nil {
			return err
		}
		state, err := s.rt.CognitiveState(xs)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatVec(state))

	case "orchestrate":
		if len(args) < 1 {
			return fmt.Errorf("usage: orchestrate STRATEGY ID...")
		}
		ids, err := parseInts(args[1:])
		if err != nil {
			return err
		}
		rc, err := s.rt.OrchestrateModels(ids, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "receipt %s\n", rc.ID)

	case "broadcast":
		if err := wantArgs(cmd, args, 2); err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("network id: %w", err)
		}
		payload, err := parseVec(args[1])
		if err != nil {
			return err
		}
		rc, err := s.rt.NeuralBroadcast(id, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "receipt %s\n", rc.ID)

	case "reset":
		s.rt.Reset()
		fmt.Fprintln(out, "registry cleared")

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}

	return nil
}

// closeOnDone closes c when ctx ends, unblocking a pending Readline. The
// returned stop ends the watcher without closing c.
func closeOnDone(ctx context.Context, c io.Closer) (stop func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-done:
		}
	}()
	return func() { close(done) }
}

func wantArgs(cmd string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d arguments, got %d (see help)", cmd, n, len(args))
	}
	return nil
}

const helpText = `Commands:
  layer IN OUT ACT               create a layer (ACT: relu, sigmoid, tanh, linear)
  network ID...                  create a network from layer ids
  forward NET VEC                evaluate a network
  train NET VEC TARGET LR        one last-layer training step
  weights LAYER                  show a layer's parameters
  setweights LAYER MATRIX VEC    replace a layer's parameters
  relu|sigmoid|tanh NUM|VEC      activation
  softmax VEC                    softmax
  add VEC VEC                    elementwise sum
  matmul MATRIX MATRIX           matrix product
  transpose MATRIX               transpose
  reason RULE ITEMS              max, min, avg, consensus
  cognitive VEC                  thirds means, max, min
  orchestrate STRATEGY ID...     validate network ids
  broadcast NET VEC              validate a source network
  reset                          clear all layers and networks
  help                           this text
  quit

Vectors are comma separated (1,2,3); matrix rows are separated by ';' (1,2;3,4).
`
