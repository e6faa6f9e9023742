package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/ilaria3312/MyLibrary/internal/catalog"
	"github.com/ilaria3312/MyLibrary/internal/editor"
	"github.com/ilaria3312/MyLibrary/internal/picker"
	"github.com/ilaria3312/MyLibrary/internal/storage"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// bookFlags are the field flags shared by add and edit.
type bookFlags struct {
	title     string
	author    string
	genre     string
	publisher string
	rating    int
	cover     string
	noCover   bool
}

func (f *bookFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Book title")
	cmd.Flags().StringVar(&f.author, "author", "", "Author")
	cmd.Flags().StringVar(&f.genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "Publisher")
	cmd.Flags().IntVar(&f.rating, "rating", 0, "Star rating, 0-5")
	cmd.Flags().StringVar(&f.cover, "cover", "", "Path to a cover image (jpg, png, gif, bmp, tiff)")
	cmd.Flags().BoolVar(&f.noCover, "no-cover", false, "Remove the cover")
}

// anyChanged reports whether the user passed at least one field flag.
func (f *bookFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"title", "author", "genre", "publisher", "rating", "cover", "no-cover"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags the user set into the session draft.
func (f *bookFlags) apply(cmd *cobra.Command, s *editor.Session) error {
	set := func(name string, field editor.Field, value string) {
		if cmd.Flags().Changed(name) {
			s.UpdateField(field, value)
		}
	}
	set("title", editor.FieldTitle, f.title)
	set("author", editor.FieldAuthor, f.author)
	set("genre", editor.FieldGenre, f.genre)
	set("publisher", editor.FieldPublisher, f.publisher)

	if cmd.Flags().Changed("rating") {
		if f.rating < 0 || f.rating > catalog.MaxRating {
			return fmt.Errorf("--rating must be between 0 and %d, got %d", catalog.MaxRating, f.rating)
		}
		s.SetRating(f.rating)
	}

	switch {
	case f.noCover && f.cover != "":
		return fmt.Errorf("--cover and --no-cover are mutually exclusive")
	case f.noCover:
		s.SetCoverImage(nil)
	case f.cover != "":
		data, err := picker.Load(f.cover)
		if err != nil {
			return fmt.Errorf("loading cover: %w", err)
		}
		s.SetCoverImage(data)
	}
	return nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printBook prints one book the way list does.
func printBook(w io.Writer, b catalog.Book) {
	fmt.Fprintf(w, "%s  %s %s %s\n",
		color.HiBlackString(shortID(b.ID)),
		color.New(color.Bold).Sprint(b.Title),
		color.HiBlackString("by"),
		b.Author)

	var details []string
	if b.Genre != "" {
		details = append(details, color.CyanString(b.Genre))
	}
	if b.Publisher != "" {
		details = append(details, b.Publisher)
	}
	if b.Rating > 0 {
		details = append(details, color.YellowString(catalog.Stars(b.Rating)))
	}
	if b.HasCover() {
		details = append(details, "cover")
	}
	if len(details) > 0 {
		fmt.Fprintf(w, "          %s\n", strings.Join(details, color.HiBlackString(" · ")))
	}
}

// shortID trims a UUID to its last 8 characters for display. Lookups accept
// either form, see resolveID.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// resolveID finds the book whose ID is id or ends with it. A suffix must
// match exactly one book.
func resolveID(books []catalog.Book, id string) (catalog.Book, error) {
	if b := catalog.ByID(books, id); b != nil {
		return *b, nil
	}
	var found []catalog.Book
	for _, b := range books {
		if id != "" && strings.HasSuffix(b.ID, id) {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return catalog.Book{}, fmt.Errorf("book %q not found", id)
	case 1:
		return found[0], nil
	default:
		return catalog.Book{}, fmt.Errorf("book id %q is ambiguous (%d matches)", id, len(found))
	}
}

// confirm asks a yes/no question on stdin. Anything but y/yes is no.
func confirm(in io.Reader, prompt string) bool {
	fmt.Fprint(os.Stderr, prompt+" (y/N): ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// plural formats a count with its noun.
func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// completeBookIDs offers short ids, described by title, for commands that
// take a book id. Completion runs without the shared backend, so it opens
// its own for the duration of the lookup.
func completeBookIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || cfg == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	b, err := storage.Open(cfg.Data.EffectiveBackend(), cfg.Data.Dir, logger)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer func() { _ = b.Close() }()

	books, err := b.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var out []string
	for _, book := range books {
		id := shortID(book.ID)
		if strings.HasPrefix(id, toComplete) {
			out = append(out, id+"\t"+book.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
