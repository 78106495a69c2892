package workflow

import (
	"fmt"
	"strings"
)

type NodeInfo struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EdgeInfo struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Condition string `json:"condition,omitempty"`
}

type Graph struct {
	Nodes []NodeInfo `json:"nodes"`
	Edges []EdgeInfo `json:"edges"`
}

// Describe returns the node and edge tables walked by Invoke.
func Describe() Graph {
	return Graph{
		Nodes: []NodeInfo{
			{Id: NodeStart, Name: "Start", Description: "Incoming shopper message"},
			{Id: NodeClassifyIntent, Name: "Classify Intent", Description: "Label the message with a shopping intent"},
			{Id: NodeSearchProducts, Name: "Search Products", Description: "Keyword expansion, retrieval, ranking and relevance filtering"},
			{Id: NodeBrowseCategories, Name: "Browse Categories", Description: "Load categories with sample products"},
			{Id: NodeCompareProducts, Name: "Compare Products", Description: "Narrative comparison of the top results"},
			{Id: NodeProductResponse, Name: "Product Response", Description: "Sales reply for search results or alternatives"},
			{Id: NodeCategoryResponse, Name: "Category Response", Description: "Summary of categories and sample counts"},
			{Id: NodeGeneralResponse, Name: "General Response", Description: "Greetings and store policy help"},
			{Id: NodeEnd, Name: "End", Description: "Reply returned to the shopper"},
		},
		Edges: []EdgeInfo{
			{From: NodeStart, To: NodeClassifyIntent},
			{From: NodeClassifyIntent, To: NodeSearchProducts, Condition: "PRODUCT_SEARCH or PRODUCT_COMPARE"},
			{From: NodeClassifyIntent, To: NodeBrowseCategories, Condition: "CATEGORY_BROWSE"},
			{From: NodeClassifyIntent, To: NodeGeneralResponse, Condition: "otherwise"},
			{From: NodeSearchProducts, To: NodeCompareProducts, Condition: "PRODUCT_COMPARE and more than one result"},
			{From: NodeSearchProducts, To: NodeProductResponse, Condition: "otherwise"},
			{From: NodeBrowseCategories, To: NodeCategoryResponse},
			{From: NodeCompareProducts, To: NodeEnd},
			{From: NodeProductResponse, To: NodeEnd},
			{From: NodeCategoryResponse, To: NodeEnd},
			{From: NodeGeneralResponse, To: NodeEnd},
		},
	}
}

// Mermaid renders Describe as a top-down flowchart.
func Mermaid() string {
	g := Describe()

	var sb strings.Builder
	sb.WriteString("flowchart TD\n")
	for _, n := range g.Nodes {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", mermaidID(n.Id), n.Name)
	}
	for _, e := range g.Edges {
		if e.Condition == "" {
			fmt.Fprintf(&sb, "    %s --> %s\n", mermaidID(e.From), mermaidID(e.To))
			continue
		}
		fmt.Fprintf(&sb, "    %s -->|%s| %s\n", mermaidID(e.From), e.Condition, mermaidID(e.To))
	}
	return sb.String()
}

// mermaidID avoids "end", which mermaid reserves.
func mermaidID(id string) string {
	switch id {
	case NodeStart:
		return "START"
	case NodeEnd:
		return "END"
	}
	return id
}
