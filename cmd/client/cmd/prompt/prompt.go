// Package prompt задаёт вопросы в терминале.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter читает ответы построчно. Пустой ответ или конец ввода дают значение по умолчанию.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// New создаёт Prompter поверх stdin и out.
func New(out io.Writer) *Prompter {
	fd := int(os.Stdin.Fd())
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: out,
		fd:  fd,
		tty: term.IsTerminal(fd),
	}
}

// NewWithReader нужен для неинтерактивного ввода и тестов, пароль читается как обычная строка.
func NewWithReader(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// Interactive сообщает, что ввод идёт с терминала.
func (p *Prompter) Interactive() bool {
	return p.tty
}

// Line спрашивает строку. def показывается в скобках и возвращается при пустом ответе.
func (p *Prompter) Line(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Required повторяет вопрос, пока не получит непустой ответ. Конец ввода - ошибка.
func (p *Prompter) Required(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		line, err := p.in.ReadString('\n')
		if v := strings.TrimSpace(line); v != "" {
			return v, nil
		}
		if err != nil {
			return "", fmt.Errorf("%s: значение обязательно", label)
		}
	}
}

// Password читает пароль без эха, если stdin - терминал.
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.tty {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return string(b), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("ошибка чтения пароля: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm задаёт вопрос да/нет, по умолчанию нет.
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.Line(label+" [y/N]", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes", "д", "да":
		return true, nil
	}
	return false, nil
}
