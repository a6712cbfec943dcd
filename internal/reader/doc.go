package reader

// Package reader implements the paginated document controller: page
// navigation in single and continuous reading modes, zoom, fullscreen,
// keyboard and swipe input, and persistence of the reading position.
//
// The controller never parses or rasterizes the document. A rendering
// engine reports the page count through SetNumPages and the host view
// reports scroll positions through OnScroll.
