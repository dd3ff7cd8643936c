package service

import "Micro_Social/internal/model"

// Actor 经过认证的操作者。Admin 是平台级角色，作为显式能力传入，
// 不从请求上下文之类的全局状态读取。
type Actor struct {
	ID    uint64
	Admin bool
}

// GroupAuthorizer 群内动作的纯判定表。
// 版主身份只看 group.ModeratorID，不依赖版主是否持有成员行。
type GroupAuthorizer struct{}

// CanPostMessage 只有 Accepted 成员能发言
func (GroupAuthorizer) CanPostMessage(memberStatus string) bool {
	return memberStatus == model.MembershipAccepted
}

// CanEditMessage 作者本人，且编辑时仍是 Accepted 成员；
// 退群后对自己历史消息也失去编辑权
func (GroupAuthorizer) CanEditMessage(actor Actor, msg *model.GroupMessage, memberStatus string) bool {
	return msg.UserID == actor.ID && memberStatus == model.MembershipAccepted
}

// CanDeleteMessage 作者、版主或平台管理员
func (GroupAuthorizer) CanDeleteMessage(actor Actor, group *model.Group, msg *model.GroupMessage) bool {
	return msg.UserID == actor.ID || group.ModeratorID == actor.ID || actor.Admin
}

// CanModerateRequests 审批入群请求、查看 Pending 列表：仅版主
func (GroupAuthorizer) CanModerateRequests(actor Actor, group *model.Group) bool {
	return group.ModeratorID == actor.ID
}

// CanRemoveMember 仅版主，且不能移除版主自己
func (GroupAuthorizer) CanRemoveMember(actor Actor, group *model.Group, target *model.GroupMembership) bool {
	return group.ModeratorID == actor.ID && target.UserID != group.ModeratorID
}

// CanLeave 版主不能退群，只能删群
func (GroupAuthorizer) CanLeave(actor Actor, group *model.Group) bool {
	return group.ModeratorID != actor.ID
}

// CanDeleteGroup 版主或平台管理员
func (GroupAuthorizer) CanDeleteGroup(actor Actor, group *model.Group) bool {
	return group.ModeratorID == actor.ID || actor.Admin
}

// CanEditGroup 群资料只有版主能改
func (GroupAuthorizer) CanEditGroup(actor Actor, group *model.Group) bool {
	return group.ModeratorID == actor.ID
}
