package blogmd_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-blogmd"
)

// ExampleRender renders a fragment with the lite dialect.
func ExampleRender() {
	fmt.Println(blogmd.Render("Hello world"))
	fmt.Println(blogmd.Render("## Setup\n**Install** it."))
	// Output:
	// <p>Hello world</p>
	// <h2>Setup</h2>
	// <p><strong>Install</strong> it.</p>
}

// Example builds an article page without starting a browser.
// Leave HTMLOnly unset to get the PDF as well (requires Chrome).
func Example() {
	conv, err := blogmd.NewConverter(blogmd.WithTheme("sepia"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), blogmd.Input{
		Markdown: "Hooks let function components hold state.",
		Article: &blogmd.Article{
			Title:  "React Hooks",
			Author: "Sarah Johnson",
			Date:   "2025-11-05",
		},
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.ReadTime)
	fmt.Println(result.Excerpt)
	fmt.Println(strings.Contains(string(result.HTML), "November 5, 2025"))
	// Output:
	// 1 min
	// Hooks let function components hold state.
	// true
}

// Example_customCSS appends CSS after the theme.
func Example_customCSS() {
	conv, err := blogmd.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), blogmd.Input{
		Markdown: "# Styled\n\nBody text.",
		CSS:      "body { font-family: Georgia, serif; }",
		HTMLOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(result.HTML), "Georgia"))
	// Output: true
}

// ExampleConverterPool shares converters between workers.
func ExampleConverterPool() {
	pool := blogmd.NewConverterPool(2)
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer pool.Release(conv)

	result, err := conv.Convert(context.Background(), blogmd.Input{Markdown: "- a\n- b", HTMLOnly: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Fragment)
	// Output: <ul><li>a</li><li>b</li></ul>
}
