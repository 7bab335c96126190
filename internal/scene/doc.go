// Package scene loads element trees from YAML scene files.
//
// A scene names an optional title and one root node. A node is either a
// mapping with exactly one of tag, text or component, or a plain scalar,
// which becomes a text node:
//
//	title: Greeting
//	root:
//	  tag: div
//	  props:
//	    id: app
//	  children:
//	    - tag: h1
//	      children: [Hello]
//	    - component: Counter
//	      props:
//	        start: 3
//	    - text: plain text
//
// Scene errors carry the file position of the offending node.
package scene
