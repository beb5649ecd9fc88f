package main

import (
	"bufio"
	"errors"
	"io"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
)

// errInterrupted is returned when the user presses Ctrl+C or Escape while a
// program waits for a key.
var errInterrupted = errors.New("input interrupted")

// inputSource supplies one character each time a program asks for input.
// It returns io.EOF when no more input is available.
type inputSource interface {
	ReadRune() (rune, error)
}

// stringInput replays a fixed string.
type stringInput struct {
	runes []rune
}

func newStringInput(s string) *stringInput {
	return &stringInput{runes: []rune(s)}
}

func (s *stringInput) ReadRune() (rune, error) {
	if len(s.runes) == 0 {
		return 0, io.EOF
	}
	r := s.runes[0]
	s.runes = s.runes[1:]
	return r, nil
}

// readerInput reads UTF-8 characters from a stream, such as piped stdin.
type readerInput struct {
	r *bufio.Reader
}

func newReaderInput(r io.Reader) *readerInput {
	return &readerInput{r: bufio.NewReader(r)}
}

func (r *readerInput) ReadRune() (rune, error) {
	ch, _, err := r.r.ReadRune()
	return ch, err
}

// keyboardInput reads single key presses from the terminal without waiting
// for Enter.
type keyboardInput struct {
	echo func(rune)
}

func (k *keyboardInput) ReadRune() (rune, error) {
	var (
		ch  rune
		err error
	)
	listenErr := keyboard.Listen(func(key keys.Key) (stop bool, e error) {
		switch key.Code {
		case keys.CtrlC, keys.Esc:
			err = errInterrupted
			return true, nil
		case keys.CtrlD:
			err = io.EOF
			return true, nil
		case keys.Enter:
			ch = '\n'
		case keys.Space:
			ch = ' '
		case keys.Tab:
			ch = '\t'
		case keys.RuneKey:
			if len(key.Runes) == 0 {
				return false, nil
			}
			ch = key.Runes[0]
		default:
			return false, nil
		}
		return true, nil
	})
	if listenErr != nil {
		return 0, listenErr
	}
	if err == nil && k.echo != nil {
		k.echo(ch)
	}
	return ch, err
}
