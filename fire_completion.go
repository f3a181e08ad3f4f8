package fire

import (
	"fmt"
	"strings"
)

const bashCompletionTemplate = `# bash completion for %s

_%s_completions()
{
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    opts="%s"

    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "$opts" -- "$cur"))
        return
    fi

    COMPREPLY=($(compgen -f -- "$cur"))
}

complete -o default -F _%s_completions %s
`

const zshCompletionTemplate = `#compdef %s

_%s() {
    local -a opts
    opts=(%s)

    if [[ "$words[CURRENT]" == -* ]]; then
        compadd -a opts
        return
    fi

    _files
}

compdef _%s %s
`

// completionWords gathers every declared named form, e.g. "-c --count", in
// presentation order.
func (m *Matcher) completionWords() []string {
	var words []string
	for _, rec := range m.recorder.sorted() {
		if rec.ID.short.Has() {
			words = append(words, "-"+rec.ID.short.Value())
		}
		if rec.ID.long.Has() {
			words = append(words, "--"+rec.ID.long.Value())
		}
	}
	return words
}

// completionFuncName sanitizes the executable name for use in a shell
// function identifier.
func completionFuncName(executable string) string {
	var sb strings.Builder
	for _, r := range executable {
		if r == '-' || r == '.' || r == '/' {
			sb.WriteRune('_')
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// GenerateBashCompletion renders a static bash completion script offering
// the run's declared flags.
func (m *Matcher) GenerateBashCompletion() string {
	name := completionFuncName(m.executable)
	opts := strings.Join(m.completionWords(), " ")
	return fmt.Sprintf(bashCompletionTemplate, m.executable, name, opts, name, m.executable)
}

// GenerateZshCompletion renders a static zsh completion script offering the
// run's declared flags.
func (m *Matcher) GenerateZshCompletion() string {
	name := completionFuncName(m.executable)
	opts := strings.Join(m.completionWords(), " ")
	return fmt.Sprintf(zshCompletionTemplate, m.executable, name, opts, name, m.executable)
}
