// Package pipeline implements the Markdown-to-LaTeX conversion stages.
//
// A document flows through four stages:
//   - Preprocessor normalizes line endings and Unicode and splits off
//     front matter
//   - Tokenize classifies each line on its own (heading, list item, quote
//     line, code fence, comment, text, blank)
//   - Grouper turns the flat records into Start/Middle/End/Singleton events
//     so that lists, quotes and code blocks can be bracketed
//   - Renderer maps each event to a LaTeX fragment, using
//     InlineTransformer for emphasis, code spans, links and math
//
// Classification is stateless. All structure is recovered by the grouping
// pass, which keeps a stack of open groups and closes them in LIFO order.
package pipeline
