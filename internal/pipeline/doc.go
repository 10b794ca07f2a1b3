// Package pipeline turns a Markdown source into a complete HTML document.
//
// Stages, in the order the converter drives them:
//   - Preprocess: line endings, front matter
//   - Renderer: Markdown to an HTML fragment via goldmark, with a [toc]
//     marker prepended when missing, image sources rewritten by an
//     ImageRewriter and raw HTML blocks by an HTMLBlockRewriter
//   - StyleBuilder: the <style>/<link> block, user hrefs resolved by
//     ResolveHref
//   - Assembler: fragment, styles and title merged into the template
//
// Browser export is handled by the root mdexport package. The pipeline
// never touches the filesystem except through the asset loader.
package pipeline
