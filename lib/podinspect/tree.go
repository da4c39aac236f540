// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podinspect

import (
	"encoding/binary"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/graphpod/pod/lib/pod"
	"github.com/graphpod/pod/lib/remap"
)

// Node is one decoded POD value in a browsable tree. Leaf nodes carry
// a formatted scalar in Value; container nodes (Struct, Object, Array,
// Choice, Sequence) carry Children and a summary in Value (element
// count, object type name, and similar).
type Node struct {
	Tag      pod.Tag
	Label    string // property key name, array index, "value", or "" at the root
	Value    string
	Children []*Node
	Depth    int

	// Expanded controls whether Children are shown by [Model]. Nodes
	// built by [BuildTree] start collapsed from depth 3 down so a large
	// tree doesn't fill the screen on first render.
	Expanded bool
}

// leaf reports whether the node has no children, regardless of tag --
// an empty Object or Struct renders as a leaf even though its tag is a
// container tag.
func (n *Node) leaf() bool { return len(n.Children) == 0 }

// BuildTree decodes the tagged POD value (tag, body) into a browsable
// tree. names resolves object types, property keys, and TagID values
// to symbolic names; pass nil to fall back to raw numeric ids (the
// case for a global table the caller hasn't loaded, or a demo tree
// built from ids with no registered names).
func BuildTree(tag pod.Tag, body []byte, names *remap.GlobalTypeTable) (*Node, error) {
	root := &Node{Label: "root"}
	if err := buildNode(root, tag, body, names, 0); err != nil {
		return nil, err
	}
	return root, nil
}

// BuildTopLevel decodes buf as a sequence of sibling PODs at the
// implicit top level, the same shape [pod.NewParser] accepts. This is
// the entry point for a captured frame's body, which is not itself a
// single tagged value.
func BuildTopLevel(buf []byte, names *remap.GlobalTypeTable) (*Node, error) {
	parser := pod.NewParser(buf)
	root := &Node{Label: "root", Tag: pod.TagStruct, Expanded: true}
	for {
		tag, body, err := parser.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return nil, err
		}
		child := &Node{Depth: 1}
		if err := buildNode(child, tag, body, names, 1); err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	root.Value = fmt.Sprintf("%d element(s)", len(root.Children))
	return root, nil
}

func buildNode(node *Node, tag pod.Tag, body []byte, names *remap.GlobalTypeTable, depth int) error {
	node.Tag = tag
	node.Depth = depth
	node.Expanded = depth < 3

	switch tag {
	case pod.TagNone:
		node.Value = "none"
	case pod.TagBool, pod.TagID, pod.TagInt, pod.TagLong, pod.TagFloat, pod.TagDouble,
		pod.TagString, pod.TagBytes, pod.TagPointer, pod.TagFd,
		pod.TagRectangle, pod.TagFraction:
		node.Value = formatScalar(tag, body, names)

	case pod.TagStruct:
		return buildContainer(node, pod.TagStruct, body, names)

	case pod.TagObject:
		return buildObject(node, body, names)

	case pod.TagArray:
		return buildArray(node, body, names)

	case pod.TagChoice:
		return buildChoice(node, body, names)

	case pod.TagSequence:
		return buildSequence(node, body, names)

	case pod.TagProperty:
		return fmt.Errorf("podinspect: bare Property tag outside an Object")

	default:
		return fmt.Errorf("podinspect: unhandled tag %s", tag)
	}
	return nil
}

func buildContainer(node *Node, containerTag pod.Tag, body []byte, names *remap.GlobalTypeTable) error {
	// A Struct's body is already a bare sequence of tagged children --
	// exactly the shape [pod.NewParser] treats its input as -- so no
	// Enter() (and no header-reconstructing wrap) is needed here.
	parser := pod.NewParser(body)
	for {
		tag, childBody, err := parser.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}
		child := &Node{Label: fmt.Sprintf("[%d]", len(node.Children))}
		if err := buildNode(child, tag, childBody, names, node.Depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	node.Value = fmt.Sprintf("%d element(s)", len(node.Children))
	return nil
}

func buildObject(node *Node, body []byte, names *remap.GlobalTypeTable) error {
	// buildNode is handed the Object's raw body (post-header), so
	// re-wrap it as a synthetic single-child struct to reuse Enter,
	// which peels off the (object_type, object_id) prefix.
	wrapped := wrapAsChild(pod.TagObject, body)
	parser := pod.NewParser(wrapped)
	if err := parser.Enter(); err != nil {
		return err
	}
	objectType, objectID, _ := parser.CurrentObject()
	node.Value = fmt.Sprintf("type=%s id=%d", typeName(names, objectType), objectID)

	properties, err := parser.Properties()
	if err != nil {
		return err
	}
	for _, prop := range properties {
		child := &Node{Label: keyName(names, prop.Key)}
		if prop.Flags&pod.PropRead == 0 || prop.Flags&pod.PropWrite != 0 {
			child.Label += flagSuffix(prop.Flags)
		}
		if err := buildNode(child, prop.ValueType, prop.Value, names, node.Depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	return nil
}

func flagSuffix(flags pod.PropertyFlag) string {
	suffix := " ("
	if flags&pod.PropRead != 0 {
		suffix += "r"
	}
	if flags&pod.PropWrite != 0 {
		suffix += "w"
	}
	if flags&pod.PropSerial != 0 {
		suffix += "s"
	}
	return suffix + ")"
}

func buildArray(node *Node, body []byte, names *remap.GlobalTypeTable) error {
	wrapped := wrapAsChild(pod.TagArray, body)
	parser := pod.NewParser(wrapped)
	if err := parser.Enter(); err != nil {
		return err
	}
	index := 0
	for {
		tag, childBody, err := parser.Next()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}
		child := &Node{Label: fmt.Sprintf("[%d]", index)}
		if err := buildNode(child, tag, childBody, names, node.Depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
		index++
	}
	node.Value = fmt.Sprintf("%d element(s)", len(node.Children))
	return nil
}

func buildChoice(node *Node, body []byte, names *remap.GlobalTypeTable) error {
	values, err := pod.GetValues(pod.TagChoice, body)
	if err != nil {
		return err
	}
	node.Value = fmt.Sprintf("%s of %d %s", values.ChoiceType, values.Count, values.ChildType)

	elements, err := pod.ChoiceElements(body)
	if err != nil {
		return err
	}
	for i, elementBody := range elements {
		label := fmt.Sprintf("[%d]", i)
		if i == 0 {
			label += " (default)"
		}
		child := &Node{Label: label}
		if err := buildNode(child, values.ChildType, elementBody, names, node.Depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
	}
	return nil
}

func buildSequence(node *Node, body []byte, names *remap.GlobalTypeTable) error {
	wrapped := wrapAsChild(pod.TagSequence, body)
	parser := pod.NewParser(wrapped)
	if err := parser.Enter(); err != nil {
		return err
	}
	count := 0
	for {
		offset, tag, controlBody, err := parser.NextControl()
		if err == pod.ErrEnd {
			break
		}
		if err != nil {
			return err
		}
		child := &Node{Label: fmt.Sprintf("@%d", offset)}
		if err := buildNode(child, tag, controlBody, names, node.Depth+1); err != nil {
			return err
		}
		node.Children = append(node.Children, child)
		count++
	}
	node.Value = fmt.Sprintf("%d control entr(ies)", count)
	return nil
}

// wrapAsChild builds a minimal single-child styleTagged buffer so a
// fresh Parser can Enter or Next directly into a body that was itself
// already stripped of its own header by the caller's Parser. The
// header layout (size:u32, tag:u32, little-endian) mirrors
// [pod.HeaderSize]'s documented format.
func wrapAsChild(tag pod.Tag, body []byte) []byte {
	buf := make([]byte, pod.HeaderSize+len(body))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(body)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(tag))
	copy(buf[pod.HeaderSize:], body)
	if pad := (8 - len(body)%8) % 8; pad != 0 {
		buf = append(buf, make([]byte, pad)...)
	}
	return buf
}

func typeName(names *remap.GlobalTypeTable, id uint32) string {
	if names == nil {
		return fmt.Sprintf("#%d", id)
	}
	if name := names.NameOf(id); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func keyName(names *remap.GlobalTypeTable, id uint32) string {
	return typeName(names, id)
}

func formatScalar(tag pod.Tag, body []byte, names *remap.GlobalTypeTable) string {
	parser := pod.NewParser(wrapAsChild(tag, body))
	switch tag {
	case pod.TagBool:
		v, err := parser.GetBool()
		if err != nil {
			return "<malformed bool>"
		}
		return fmt.Sprintf("%t", v)
	case pod.TagID:
		v, err := parser.GetID()
		if err != nil {
			return "<malformed id>"
		}
		return typeName(names, v)
	case pod.TagInt:
		v, err := parser.GetInt()
		if err != nil {
			return "<malformed int>"
		}
		return fmt.Sprintf("%d", v)
	case pod.TagLong:
		v, err := parser.GetLong()
		if err != nil {
			return "<malformed long>"
		}
		return fmt.Sprintf("%d", v)
	case pod.TagFloat:
		v, err := parser.GetFloat()
		if err != nil {
			return "<malformed float>"
		}
		return fmt.Sprintf("%g", v)
	case pod.TagDouble:
		v, err := parser.GetDouble()
		if err != nil {
			return "<malformed double>"
		}
		return fmt.Sprintf("%g", v)
	case pod.TagString:
		v, err := parser.GetString()
		if err != nil {
			return "<malformed string>"
		}
		return fmt.Sprintf("%q", v)
	case pod.TagBytes:
		v, err := parser.GetBytes()
		if err != nil {
			return "<malformed bytes>"
		}
		return humanize.Bytes(uint64(len(v)))
	case pod.TagPointer:
		return fmt.Sprintf("%s pointer", humanize.Bytes(uint64(len(body))))
	case pod.TagFd:
		return fmt.Sprintf("%s fd", humanize.Bytes(uint64(len(body))))
	case pod.TagRectangle:
		w, h, err := parser.GetRectangle()
		if err != nil {
			return "<malformed rectangle>"
		}
		return fmt.Sprintf("%dx%d", w, h)
	case pod.TagFraction:
		num, denom, err := parser.GetFraction()
		if err != nil {
			return "<malformed fraction>"
		}
		return fmt.Sprintf("%d/%d", num, denom)
	default:
		return fmt.Sprintf("%d byte(s)", len(body))
	}
}
