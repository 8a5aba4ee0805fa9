// Package graph defines the GraphQL schema and its resolvers. Object types
// map the persisted models, list fields return the shared pagination
// envelope, and mutations delegate to the service layer so the categorized
// errors travel out through the error extensions.
package graph

import (
	"inkwell/internal/service"

	"github.com/graphql-go/graphql"
)

// Resolver holds the services the schema resolves against.
type Resolver struct {
	Users    *service.UserService
	Posts    *service.PostService
	Comments *service.CommentService
	Tags     *service.TagService
}

type builder struct {
	r *Resolver

	locationType    *graphql.Object
	userType        *graphql.Object
	postType        *graphql.Object
	commentType     *graphql.Object
	tagType         *graphql.Object
	userPageType    *graphql.Object
	postPageType    *graphql.Object
	commentPageType *graphql.Object

	locationInput      *graphql.InputObject
	createUserInput    *graphql.InputObject
	updateUserInput    *graphql.InputObject
	createPostInput    *graphql.InputObject
	updatePostInput    *graphql.InputObject
	createCommentInput *graphql.InputObject
}

// NewSchema assembles the executable schema over the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	b := &builder{r: r}
	b.buildTypes()
	b.buildInputs()
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
}

func (b *builder) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: b.userPageType,
				Args: listArgs(),
				Resolve: instrument("users", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Users.ListUsers(p.Context, listParams(p))
				}),
			},
			"user": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("user", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Users.GetUser(p.Context, uintArg(p, "id"))
				}),
			},
			"posts": &graphql.Field{
				Type: b.postPageType,
				Args: listArgs(),
				Resolve: instrument("posts", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Posts.ListPosts(p.Context, listParams(p))
				}),
			},
			"postsByUser": &graphql.Field{
				Type: b.postPageType,
				Args: mergeArgs(listArgs(), graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				}),
				Resolve: instrument("postsByUser", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Posts.ListPostsByUser(p.Context, uintArg(p, "userId"), listParams(p))
				}),
			},
			"postsByTag": &graphql.Field{
				Type: b.postPageType,
				Args: mergeArgs(listArgs(), graphql.FieldConfigArgument{
					"tag": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: instrument("postsByTag", func(p graphql.ResolveParams) (interface{}, error) {
					tag, _ := p.Args["tag"].(string)
					return b.r.Posts.ListPostsByTag(p.Context, tag, listParams(p))
				}),
			},
			"postById": &graphql.Field{
				Type: b.postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("postById", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Posts.GetPost(p.Context, uintArg(p, "id"))
				}),
			},
			"comments": &graphql.Field{
				Type: b.commentPageType,
				Args: listArgs(),
				Resolve: instrument("comments", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Comments.ListComments(p.Context, listParams(p))
				}),
			},
			"commentsByPost": &graphql.Field{
				Type: b.commentPageType,
				Args: mergeArgs(listArgs(), graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				}),
				Resolve: instrument("commentsByPost", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Comments.ListCommentsByPost(p.Context, uintArg(p, "postId"), listParams(p))
				}),
			},
			"commentsByUser": &graphql.Field{
				Type: b.commentPageType,
				Args: mergeArgs(listArgs(), graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				}),
				Resolve: instrument("commentsByUser", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Comments.ListCommentsByUser(p.Context, uintArg(p, "userId"), listParams(p))
				}),
			},
			"tags": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: instrument("tags", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Tags.ListTagNames(p.Context)
				}),
			},
			"tag": &graphql.Field{
				Type: b.tagType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: instrument("tag", func(p graphql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					tag, err := b.r.Tags.GetTag(p.Context, name)
					if err != nil {
						return nil, err
					}
					if tag == nil {
						return nil, nil
					}
					return tag, nil
				}),
			},
		},
	})
}

func (b *builder) mutationType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createUserInput)},
				},
				Resolve: instrument("createUser", func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					return b.r.Users.CreateUser(p.Context, service.CreateUserInput{
						Title:       strField(in, "title"),
						FirstName:   strField(in, "firstName"),
						LastName:    strField(in, "lastName"),
						Gender:      strField(in, "gender"),
						Email:       strField(in, "email"),
						DateOfBirth: strField(in, "dateOfBirth"),
						Phone:       strField(in, "phone"),
						Picture:     strField(in, "picture"),
						Location:    locationField(in, "location"),
					})
				}),
			},
			"updateUser": &graphql.Field{
				Type: b.userType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updateUserInput)},
				},
				Resolve: instrument("updateUser", func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					return b.r.Users.UpdateUser(p.Context, uintArg(p, "id"), service.UpdateUserInput{
						Title:       strPtrField(in, "title"),
						FirstName:   strPtrField(in, "firstName"),
						LastName:    strPtrField(in, "lastName"),
						Gender:      strPtrField(in, "gender"),
						Email:       strPtrField(in, "email"),
						DateOfBirth: strPtrField(in, "dateOfBirth"),
						Phone:       strPtrField(in, "phone"),
						Picture:     strPtrField(in, "picture"),
						Location:    locationField(in, "location"),
					})
				}),
			},
			"deleteUser": &graphql.Field{
				Type: graphql.Int,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("deleteUser", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Users.DeleteUser(p.Context, uintArg(p, "id"))
				}),
			},
			"createPost": &graphql.Field{
				Type: b.postType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createPostInput)},
				},
				Resolve: instrument("createPost", func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					return b.r.Posts.CreatePost(p.Context, service.CreatePostInput{
						Text:  strField(in, "text"),
						Image: strField(in, "image"),
						Likes: intField(in, "likes"),
						Link:  strField(in, "link"),
						Tags:  strSliceField(in, "tags"),
						Owner: uint(intField(in, "owner")),
					})
				}),
			},
			"updatePost": &graphql.Field{
				Type: b.postType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.updatePostInput)},
				},
				Resolve: instrument("updatePost", func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					return b.r.Posts.UpdatePost(p.Context, uintArg(p, "id"), service.UpdatePostInput{
						Text:  strPtrField(in, "text"),
						Image: strPtrField(in, "image"),
						Likes: intPtrField(in, "likes"),
						Link:  strPtrField(in, "link"),
						Tags:  strSliceField(in, "tags"),
					})
				}),
			},
			"deletePost": &graphql.Field{
				Type: graphql.Int,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("deletePost", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Posts.DeletePost(p.Context, uintArg(p, "id"))
				}),
			},
			"createComment": &graphql.Field{
				Type: b.commentType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.createCommentInput)},
				},
				Resolve: instrument("createComment", func(p graphql.ResolveParams) (interface{}, error) {
					in := inputArg(p)
					return b.r.Comments.CreateComment(p.Context, service.CreateCommentInput{
						Message: strField(in, "message"),
						Owner:   uint(intField(in, "owner")),
						Post:    uint(intField(in, "post")),
					})
				}),
			},
			"deleteComment": &graphql.Field{
				Type: graphql.Int,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: instrument("deleteComment", func(p graphql.ResolveParams) (interface{}, error) {
					return b.r.Comments.DeleteComment(p.Context, uintArg(p, "id"))
				}),
			},
		},
	})
}

// mergeArgs combines the shared list arguments with a field's scoping filter.
func mergeArgs(base, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	for name, cfg := range extra {
		base[name] = cfg
	}
	return base
}
