// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	xslices "golang.org/x/exp/slices"
)

type Id int

const (
	ScriptNotFoundId Id = iota + 1
	UnknownSubcommandId
	NoScriptSpecifiedId
	ConfigParseErrorId
	ConfigLoadFailedId
	ExecFailedId
	GitUnavailableId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return xslices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return xslices.Clone(i.extLinks)
}

// Render renders the issue Markdown with the glamour style at stylePath
// (a built-in style name such as "dark", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# Script not found!

The script you asked for is not defined in the configuration file.

## Things you can try:
- List the scripts that are defined:
~~~
$ gg config show
~~~

- Check for typos in the script name
- Add the script to your configuration file:
~~~json
{
  "scripts": {
    "build": "go build ./..."
  }
}
~~~`,
		extLinks: []HttpLink{"https://www.json.org/json-en.html"},
	}

	unknownSubcommandIssue = &Issue{
		id: UnknownSubcommandId,
		mdMsg: `
# Unknown subcommand!

The first word is neither a gg subcommand nor a script from the configuration file.

## Things you can try:
- See the built-in subcommands:
~~~
$ gg --help
~~~

- See the configured scripts:
~~~
$ gg config show
~~~

- Make sure you are inside the repository that defines the script. gg reads
  the configuration from the repository root.`,
	}

	noScriptSpecifiedIssue = &Issue{
		id: NoScriptSpecifiedId,
		mdMsg: `
# No script specified!

` + "`gg run`" + ` needs the name of the script to run.

## Usage:
~~~
$ gg run <script> [args...]
~~~

Everything after the script name is passed to the script, including flags.`,
	}

	configParseErrorIssue = &Issue{
		id: ConfigParseErrorId,
		mdMsg: `
# Failed to parse the configuration file!

The configuration file is not valid JSON, or a script is neither a string nor an object.

## Common issues:
- Trailing commas or comments (JSON allows neither)
- A script given as a number, a list or null

## Things you can try:
- Check the error message above for the line/column or the script key
- Print the configuration gg understood:
~~~
$ gg config dump
~~~

## Example configuration:
~~~json
{
  "gg": "1.0.0",
  "scripts": {
    "build": "go build ./...",
    "test": "go test ./...",
    "lint": {}
  }
}
~~~`,
		extLinks: []HttpLink{"https://www.json.org/json-en.html"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration file!

A configuration file exists but could not be read.

## Search locations (in order of precedence):
1. .ggrc.json
2. .gg.json
3. gg.config.json

The files are looked up in the repository root, or in the current directory
outside a repository.

## Things you can try:
- Check the file permissions
- Make sure the configuration path is a regular file, not a directory`,
	}

	execFailedIssue = &Issue{
		id: ExecFailedId,
		mdMsg: `
# Failed to execute the script!

The script's program could not be started.

## Things you can try:
- Check that the program is installed and on your PATH
- Check that the program is executable
- Run with verbose mode to see how the command line was resolved:
~~~
$ gg --verbose run <script>
~~~`,
	}

	gitUnavailableIssue = &Issue{
		id: GitUnavailableId,
		mdMsg: `
# Git is not available!

gg uses git to find the repository root. Without it the current directory is used instead.

## Things you can try:
- Install git and make sure it is on your PATH
- Point gg at a specific git binary:
~~~
$ gg --git /usr/local/bin/git <script>
$ GG_GIT=/usr/local/bin/git gg <script>
~~~`,
		extLinks: []HttpLink{"https://git-scm.com/downloads"},
	}

	issues = map[Id]*Issue{
		scriptNotFoundIssue.Id():    scriptNotFoundIssue,
		unknownSubcommandIssue.Id(): unknownSubcommandIssue,
		noScriptSpecifiedIssue.Id(): noScriptSpecifiedIssue,
		configParseErrorIssue.Id():  configParseErrorIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		execFailedIssue.Id():        execFailedIssue,
		gitUnavailableIssue.Id():    gitUnavailableIssue,
	}
)

// Values returns all catalog entries ordered by Id.
func Values() []*Issue {
	values := maps.Values(issues)
	slices.SortFunc(values, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return values
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
