// Package io reads and writes diagrams in their serialized JSON and YAML
// forms.
//
// # Format
//
// Both encodings share the same field names:
//
//	{
//	  "nodes": [{"id": "a", "row": 0, "col": 0, "width": 2, "height": 2}],
//	  "edges": [{
//	    "id": "0",
//	    "senderAttachment":   {"nodeId": "a", "hasArrow": false, "nodeInDirection": "N"},
//	    "receiverAttachment": {"nodeId": "c", "hasArrow": true,  "nodeInDirection": "S"},
//	    "cells": [[2, 1], [3, 1]]
//	  }],
//	  "height": 6,
//	  "width": 6
//	}
//
// nodeInDirection points from the end cell of the path back into the node.
// height and width are optional and only written when the canvas is larger
// than its content.
//
// # Validation
//
// Readers reject malformed documents, duplicate or invalid ids, unknown
// node references and bad directions. Geometric consistency (overlaps,
// broken paths) is left to [diagram.Manager.Validate], so a damaged
// document can still be loaded and inspected.
//
// # Concurrency
//
// Writers only read the manager and may run concurrently with other
// readers of it. Readers return independent managers.
package io
